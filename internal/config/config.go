// Package config holds all runtime configuration for eligsched. Structural
// settings (codes, facility constants, window mode, schedule) live in a YAML
// file; credentials (DSNs, API token, SMTP password) come from the
// environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/source"
)

// Config is the assembled runtime configuration for one eligsched process.
type Config struct {
	LogFormat string // "text" or "json"
	LogFile   string
	DryRun    bool
	Source    string // "visitmgt", "oasis" or "all"

	VisitMgtDSN  string
	OasisDSN     string
	WarehouseDSN string // empty disables the warehouse write-back

	Window         string // month-to-date, today or recent-hours
	WindowHours    int    // recent-hours window size
	AmendedHours   int    // OASIS amendment lookback
	ExtractTimeout time.Duration

	Facility Facility
	Codes    Codes
	API      API
	Archive  Archive
	Store    Store
	Alert    Alert
	Schedule Schedule
}

// Facility identifies the submitting provider on every record.
type Facility struct {
	OrganizationCode string `yaml:"organization_code"`
	OrganizationName string `yaml:"organization_name"`
	ProviderLicense  string `yaml:"provider_license"`
}

// Codes are the classification constants the original queries embedded as
// SQL literals.
type Codes struct {
	DomesticNationality string   `yaml:"domestic_nationality"`
	PassportIDType      string   `yaml:"passport_id_type"`
	RecognizedIDTypes   []string `yaml:"recognized_id_types"`
}

// API configures the eligibility submission client. Token is env-only.
type API struct {
	BaseURL  string        `yaml:"base_url"`
	Token    string        `yaml:"-"`
	Timeout  time.Duration `yaml:"-"`
	RetryMax int           `yaml:"retry_max"`
}

// Archive configures the per-run record snapshots. An empty Dir disables
// archiving.
type Archive struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // parquet or csv
}

// Store names the warehouse tables receiving run output.
type Store struct {
	RecordsTable   string `yaml:"records_table"`
	ResponsesTable string `yaml:"responses_table"`
}

// Alert configures failure alerting. An empty Dir disables the file drop;
// an empty SMTPHost disables mail. SMTPPassword is env-only.
type Alert struct {
	Dir          string   `yaml:"dir"`
	MaxFiles     int      `yaml:"max_files"`
	SMTPHost     string   `yaml:"smtp_host"`
	SMTPPort     int      `yaml:"smtp_port"`
	SMTPUsername string   `yaml:"smtp_username"`
	SMTPPassword string   `yaml:"-"`
	MailFrom     string   `yaml:"mail_from"`
	MailTo       []string `yaml:"mail_to"`
}

// Schedule configures daemon mode: the run interval and the nightly
// blackout window. BlackoutStart == BlackoutEnd disables the blackout.
type Schedule struct {
	Interval      time.Duration `yaml:"-"`
	BlackoutStart int           `yaml:"blackout_start_hour"`
	BlackoutEnd   int           `yaml:"blackout_end_hour"`
}

// yamlConfig is the on-disk YAML structure. Durations are Go duration
// strings ("30s", "4h") parsed after unmarshalling.
type yamlConfig struct {
	Window         string `yaml:"window"`
	WindowHours    int    `yaml:"window_hours"`
	AmendedHours   int    `yaml:"amended_hours"`
	ExtractTimeout string `yaml:"extract_timeout"`

	Facility Facility `yaml:"facility"`
	Codes    Codes    `yaml:"codes"`
	API      struct {
		BaseURL  string `yaml:"base_url"`
		Timeout  string `yaml:"timeout"`
		RetryMax int    `yaml:"retry_max"`
	} `yaml:"api"`
	Archive  Archive `yaml:"archive"`
	Store    Store   `yaml:"store"`
	Alert    Alert   `yaml:"alert"`
	Schedule struct {
		Interval string `yaml:"interval"`
		// Pointers distinguish absent hours (apply the default window)
		// from an explicit 0/0 (blackout disabled).
		BlackoutStart *int `yaml:"blackout_start_hour"`
		BlackoutEnd   *int `yaml:"blackout_end_hour"`
	} `yaml:"schedule"`
}

// Defaults mirror the production job's behavior: month-to-date visit
// window, 4-hour amendment lookback, 4-hour schedule with a 23:00-02:00
// blackout.
const (
	defaultAmendedHours   = 4
	defaultExtractTimeout = 5 * time.Minute
	defaultAPITimeout     = 30 * time.Second
	defaultAPIRetryMax    = 3
	defaultInterval       = 4 * time.Hour
	defaultBlackoutStart  = 23
	defaultBlackoutEnd    = 2
	defaultAlertMaxFiles  = 50
)

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	c.Window = yc.Window
	c.WindowHours = yc.WindowHours
	c.AmendedHours = yc.AmendedHours
	c.Facility = yc.Facility
	c.Codes = yc.Codes
	c.Archive = yc.Archive
	c.Store = yc.Store
	c.Alert = yc.Alert

	c.API.BaseURL = yc.API.BaseURL
	c.API.RetryMax = yc.API.RetryMax

	if yc.Schedule.BlackoutStart == nil && yc.Schedule.BlackoutEnd == nil {
		c.Schedule.BlackoutStart = defaultBlackoutStart
		c.Schedule.BlackoutEnd = defaultBlackoutEnd
	} else {
		if yc.Schedule.BlackoutStart != nil {
			c.Schedule.BlackoutStart = *yc.Schedule.BlackoutStart
		}
		if yc.Schedule.BlackoutEnd != nil {
			c.Schedule.BlackoutEnd = *yc.Schedule.BlackoutEnd
		}
	}

	if c.ExtractTimeout, err = parseDuration("extract_timeout", yc.ExtractTimeout); err != nil {
		return err
	}
	if c.API.Timeout, err = parseDuration("api.timeout", yc.API.Timeout); err != nil {
		return err
	}
	if c.Schedule.Interval, err = parseDuration("schedule.interval", yc.Schedule.Interval); err != nil {
		return err
	}

	c.applyDefaults()
	return nil
}

// parseDuration parses a Go duration string, treating empty as zero so the
// default applies.
func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return d, nil
}

func (c *Config) applyDefaults() {
	if c.AmendedHours == 0 {
		c.AmendedHours = defaultAmendedHours
	}
	if c.ExtractTimeout == 0 {
		c.ExtractTimeout = defaultExtractTimeout
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaultAPITimeout
	}
	if c.API.RetryMax == 0 {
		c.API.RetryMax = defaultAPIRetryMax
	}
	if c.Schedule.Interval == 0 {
		c.Schedule.Interval = defaultInterval
	}
	if c.Alert.MaxFiles == 0 {
		c.Alert.MaxFiles = defaultAlertMaxFiles
	}
	if c.Store.RecordsTable == "" {
		c.Store.RecordsTable = "dbo.Iqama_data"
	}
	if c.Store.ResponsesTable == "" {
		c.Store.ResponsesTable = "dbo.EligibilityResponses"
	}
}

// LoadEnv pulls credentials from the environment, seeding it from a .env
// file when one is present (missing .env is not an error).
func (c *Config) LoadEnv() {
	_ = godotenv.Load()
	c.VisitMgtDSN = getEnv("VISITMGT_DSN", c.VisitMgtDSN)
	c.OasisDSN = getEnv("OASIS_DSN", c.OasisDSN)
	c.WarehouseDSN = getEnv("WAREHOUSE_DSN", c.WarehouseDSN)
	c.API.Token = getEnv("ELIGIBILITY_API_TOKEN", c.API.Token)
	c.Alert.SMTPPassword = getEnv("SMTP_PASSWORD", c.Alert.SMTPPassword)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks required fields and returns an error if the config is
// invalid for the selected sources.
func (c *Config) Validate() error {
	switch c.Source {
	case "visitmgt", "oasis", "all":
	default:
		return fmt.Errorf("unknown source %q (want visitmgt, oasis or all)", c.Source)
	}
	if c.Source != "oasis" && c.VisitMgtDSN == "" {
		return fmt.Errorf("VISITMGT_DSN is required for the visitmgt source")
	}
	if c.Source != "visitmgt" && c.OasisDSN == "" {
		return fmt.Errorf("OASIS_DSN is required for the oasis source")
	}
	mode, err := source.ParseWindowMode(c.Window)
	if err != nil {
		return err
	}
	if mode == source.WindowRecentHours && c.WindowHours <= 0 {
		return fmt.Errorf("window_hours must be positive when window is recent-hours, got %d", c.WindowHours)
	}
	if c.Codes.DomesticNationality == "" {
		return fmt.Errorf("codes.domestic_nationality is required")
	}
	if c.Codes.PassportIDType == "" {
		return fmt.Errorf("codes.passport_id_type is required")
	}
	if len(c.Codes.RecognizedIDTypes) == 0 {
		return fmt.Errorf("codes.recognized_id_types must name at least one identification type")
	}
	if c.Facility.OrganizationCode == "" || c.Facility.ProviderLicense == "" {
		return fmt.Errorf("facility.organization_code and facility.provider_license are required")
	}
	if !c.DryRun && c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required unless --dry-run is set")
	}
	if h := c.Schedule.BlackoutStart; h < 0 || h > 23 {
		return fmt.Errorf("schedule.blackout_start_hour %d out of range 0-23", h)
	}
	if h := c.Schedule.BlackoutEnd; h < 0 || h > 23 {
		return fmt.Errorf("schedule.blackout_end_hour %d out of range 0-23", h)
	}
	return nil
}
