// ABOUTME: Runtime configuration from environment, optional .env files and XDG paths
// ABOUTME: Handles defaults, CRM_* overrides and validation at startup
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/harperreed/pipeline/present"
)

const AppName = "pipeline"

// Config is the resolved settings for one run.
type Config struct {
	Locale         string `json:"locale"`
	Currency       string `json:"currency"`
	DataFile       string `json:"data_file,omitempty"`
	WebAddr        string `json:"web_addr"`
	LogLevel       string `json:"log_level"`
	RecentActivity int    `json:"recent_activity"`
}

func Default() *Config {
	return &Config{
		Locale:         "en-US",
		Currency:       "USD",
		WebAddr:        ":8080",
		LogLevel:       "info",
		RecentActivity: 5,
	}
}

// ConfigDir returns the XDG config directory for the app.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StateDir holds logs written while the terminal UI owns the screen.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// EnvFiles lists the .env files Load consults, most specific first.
func EnvFiles() []string {
	return []string{".env", filepath.Join(ConfigDir(), ".env")}
}

// Load reads .env files, applies CRM_* environment overrides to the defaults
// and validates the result. Variables already set in the environment win over
// .env values.
func Load() (*Config, error) {
	for _, path := range EnvFiles() {
		if err := LoadEnvFile(path); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads one .env file if it exists.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CRM_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("CRM_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("CRM_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("CRM_WEB_ADDR"); v != "" {
		cfg.WebAddr = v
	}
	if v := os.Getenv("CRM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CRM_RECENT_ACTIVITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CRM_RECENT_ACTIVITY %q: %w", v, err)
		}
		cfg.RecentActivity = n
	}
	return nil
}

// Validate checks that the locale and currency can be formatted and the log
// level is known.
func (c *Config) Validate() error {
	if _, err := c.Formatter(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.RecentActivity < 0 {
		return fmt.Errorf("invalid recent activity limit %d: must not be negative", c.RecentActivity)
	}
	return nil
}

// Formatter builds the presentation formatter for the configured locale.
func (c *Config) Formatter() (*present.Formatter, error) {
	return present.NewFormatter(c.Locale, c.Currency)
}
