package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/xolan/otdash/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// EnvFile is the optional dotenv file consulted for environment overrides
	EnvFile = ".env"
)

// Environment variables that override file values.
const (
	EnvAPIBaseURL = "OTDASH_API_BASE_URL"
	EnvHealthURL  = "OTDASH_HEALTH_URL"
	EnvLogLevel   = "OTDASH_LOG_LEVEL"
)

// Config represents the application configuration
type Config struct {
	// APIBaseURL is the root of the overtime backend REST API (e.g. "https://hr.example.com/api")
	APIBaseURL string `toml:"api_base_url"`
	// HealthURL is probed by "otdash status" to report backend availability
	HealthURL string `toml:"health_url"`
	// RequestTimeout bounds each API call (Go duration, e.g. "15s")
	RequestTimeout string `toml:"request_timeout"`
	// PollInterval drives the session fallback poll and the pending feed (Go duration)
	PollInterval string `toml:"poll_interval"`
	// Theme is the bubbletint theme used by the TUI
	Theme string `toml:"theme"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
	// ExportDir is where downloaded workbooks are written; empty means the working directory
	ExportDir string `toml:"export_dir"`
	// Shifts overrides the OT shift tables
	Shifts ShiftConfig `toml:"shifts"`
}

// ShiftConfig holds per-shift overrides keyed by shift code ("6:30am", "8:30am", ...).
type ShiftConfig struct {
	WeekdayOTStart     map[string]float64 `toml:"weekday_ot_start"`
	SaturdayShiftHours map[string]float64 `toml:"saturday_shift_hours"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns a Config with working defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     "http://localhost:5000/api",
		HealthURL:      "http://localhost:5000/",
		RequestTimeout: "15s",
		PollInterval:   "2s",
		Theme:          "dracula",
		LogLevel:       "info",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file if it exists, otherwise returns the
// defaults. Environment overrides are applied in both cases.
func LoadOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()

	_, err := os.Stat(path)
	switch {
	case err == nil:
		cfg, err = Load(path)
		if err != nil {
			return Config{}, err
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, err
	}

	cfg.ApplyEnv()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. A .env file in the working
// directory is loaded first; variables already set in the process win.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load(EnvFile)

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvHealthURL); v != "" {
		c.HealthURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Normalize trims and lower-cases fields that are compared case-insensitively.
func (c *Config) Normalize() {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.HealthURL = strings.TrimSpace(c.HealthURL)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Theme = strings.TrimSpace(c.Theme)
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api_base_url cannot be empty")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("invalid api_base_url %q: must start with http:// or https://", c.APIBaseURL)
	}
	if _, err := parsePositiveDuration("request_timeout", c.RequestTimeout); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("poll_interval", c.PollInterval); err != nil {
		return err
	}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	for shift, hour := range c.Shifts.WeekdayOTStart {
		if hour < 0 || hour >= 24 {
			return fmt.Errorf("invalid weekday_ot_start for shift %q: %v is not an hour of the day", shift, hour)
		}
	}
	for shift, hours := range c.Shifts.SaturdayShiftHours {
		if hours < 0 || hours > 24 {
			return fmt.Errorf("invalid saturday_shift_hours for shift %q: %v", shift, hours)
		}
	}
	return nil
}

// Timeout returns RequestTimeout as a duration. Call only on a validated config.
func (c Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Poll returns PollInterval as a duration. Call only on a validated config.
func (c Config) Poll() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", field, value)
	}
	return d, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# otdash configuration file
# All settings are optional; uncomment a line to override the default.

# Root of the overtime backend REST API
# api_base_url = "http://localhost:5000/api"

# Health endpoint probed by "otdash status"
# health_url = "http://localhost:5000/"

# Per-request timeout and session/pending poll interval (Go durations)
# request_timeout = "15s"
# poll_interval = "2s"

# TUI theme (see "otdash tui", Config tab)
# theme = "dracula"

# Log level: debug, info, warn, error
# log_level = "info"

# Directory for downloaded overtime exports
# export_dir = "~/Downloads"

# Shift tables used by the OT calculator. Unknown shifts fall back to
# 17.5 (weekday OT start hour) and 5 (Saturday shift length).
# [shifts.weekday_ot_start]
# "6:30am" = 15.5
# "8:30am" = 17.5
#
# [shifts.saturday_shift_hours]
# "6:30am" = 5
# "8:30am" = 4

# Environment overrides: OTDASH_API_BASE_URL, OTDASH_HEALTH_URL, OTDASH_LOG_LEVEL
# (also read from a .env file in the working directory)
`
}
