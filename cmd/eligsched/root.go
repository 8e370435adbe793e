package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/alert"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/archive"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/config"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/eligibility"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/exitcode"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/job"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/logging"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/normalize"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/source"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/source/oasis"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/source/visitmgt"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/store"
)

var (
	cfg     config.Config
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "eligsched",
	Short: "Hospital eligibility extraction and submission scheduler",
	Long:  "Extracts patient visit/episode records from the VisitMgt (SQL Server) and OASIS (Oracle) systems, normalizes them into eligibility records and submits them to the eligibility checking service.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "config.yaml", "Path to the YAML config file")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogFile, "log-file", "", "Also append logs to this file")
}

// setup loads the config file and environment, validates the result and
// initializes logging. Processes exit here on bad configuration.
func setup() zerolog.Logger {
	if err := cfg.LoadFromFile(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(exitcode.ConfigError)
	}
	cfg.LoadEnv()

	log, err := logging.Setup(cfg.LogFormat, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(exitcode.ConfigError)
	}

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	return log
}

// buildRunner opens the configured source connections and assembles the
// extract-submit runner. The returned func closes everything the runner
// holds open.
func buildRunner(ctx context.Context, log zerolog.Logger) (*job.Runner, func(), error) {
	mode, err := source.ParseWindowMode(cfg.Window)
	if err != nil {
		return nil, nil, err
	}
	window := source.Window{Mode: mode, RecentHours: cfg.WindowHours}

	facility := normalize.Facility{
		OrganizationCode: cfg.Facility.OrganizationCode,
		OrganizationName: cfg.Facility.OrganizationName,
		ProviderLicense:  cfg.Facility.ProviderLicense,
	}
	codes := normalize.Codes{
		DomesticNationality: cfg.Codes.DomesticNationality,
		PassportIDType:      cfg.Codes.PassportIDType,
		RecognizedIDTypes:   cfg.Codes.RecognizedIDTypes,
	}

	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	p := job.Params{DryRun: cfg.DryRun, Log: log}

	if cfg.Source != "oasis" {
		db, err := source.Open(ctx, source.DriverSQLServer, cfg.VisitMgtDSN)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("visitmgt source: %w", err)
		}
		closers = append(closers, func() { db.Close() })
		p.Extractors = append(p.Extractors, visitmgt.New(db, window, facility, codes, cfg.ExtractTimeout, log))
	}
	if cfg.Source != "visitmgt" {
		db, err := source.Open(ctx, source.DriverOracle, cfg.OasisDSN)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("oasis source: %w", err)
		}
		closers = append(closers, func() { db.Close() })
		p.Extractors = append(p.Extractors, oasis.New(db, cfg.AmendedHours, facility, codes, cfg.ExtractTimeout, log))
	}

	if !cfg.DryRun {
		p.Submit = eligibility.NewClient(eligibility.Config{
			BaseURL:  cfg.API.BaseURL,
			Token:    cfg.API.Token,
			Timeout:  cfg.API.Timeout,
			RetryMax: cfg.API.RetryMax,
		}, log)
	}

	if cfg.Archive.Dir != "" {
		format, err := archive.ParseFormat(cfg.Archive.Format)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		p.Archive = archive.NewWriter(cfg.Archive.Dir, format)
	}

	if cfg.WarehouseDSN != "" {
		wh, err := source.Open(ctx, source.DriverSQLServer, cfg.WarehouseDSN)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("warehouse: %w", err)
		}
		closers = append(closers, func() { wh.Close() })
		p.Store = store.New(wh, cfg.Store.RecordsTable, cfg.Store.ResponsesTable, log)
	}

	if cfg.Alert.Dir != "" {
		var mail *alert.MailConfig
		if cfg.Alert.SMTPHost != "" {
			mail = &alert.MailConfig{
				Host:     cfg.Alert.SMTPHost,
				Port:     cfg.Alert.SMTPPort,
				Username: cfg.Alert.SMTPUsername,
				Password: cfg.Alert.SMTPPassword,
				From:     cfg.Alert.MailFrom,
				To:       cfg.Alert.MailTo,
			}
		}
		p.Alert = alert.New(cfg.Alert.Dir, cfg.Alert.MaxFiles, mail, log)
	}

	return job.NewRunner(p), closeAll, nil
}
