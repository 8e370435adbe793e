package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/exitcode"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/job"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one extraction and submission run, then exit",
	RunE:  runOnce,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&cfg.Source, "source", "all", "Source to extract: visitmgt, oasis or all")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "Extract and archive but skip submission and write-back")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	runner, closeAll, err := buildRunner(ctx, log)
	if err != nil {
		log.Error().Err(err).Msg("setup failed")
		os.Exit(exitcode.DBConnError)
	}
	defer closeAll()

	summaries, err := runner.RunAll(ctx, time.Now())
	for _, s := range summaries {
		printSummary(s)
	}
	if err != nil {
		if cfg.Source == "all" && len(summaries) > 0 {
			os.Exit(exitcode.PartialFailure)
		}
		os.Exit(runExitCode(err))
	}
	return nil
}

// runExitCode maps a run failure onto its process exit code.
func runExitCode(err error) int {
	var runErr *job.RunError
	if !errors.As(err, &runErr) {
		return exitcode.ExtractError
	}
	switch runErr.Kind {
	case job.KindConnection:
		return exitcode.DBConnError
	case job.KindSubmission:
		return exitcode.SubmitError
	default:
		return exitcode.ExtractError
	}
}

func printSummary(s *model.RunSummary) {
	fmt.Printf("%s: %d rows read, %d skipped, %d records, %d submitted, %d failed (%.1fs)\n",
		s.Source, s.RowsRead, s.RowsSkipped, s.Records, s.Submitted, s.SubmitFailed,
		s.DurationTotal.Seconds())
	if s.ArchivePath != "" {
		fmt.Printf("%s: archived to %s\n", s.Source, s.ArchivePath)
	}
}
