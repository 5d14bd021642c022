// Package config loads the eventdeck configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// NotificationSettings gates the transient toast messages. A disabled
// global switch mutes everything; category flags gate individually.
type NotificationSettings struct {
	Enabled    bool                   `yaml:"enabled"`
	Categories NotificationCategories `yaml:"categories"`
}

// NotificationCategories are the three toast kinds the UI emits.
type NotificationCategories struct {
	Action bool `yaml:"action"`
	System bool `yaml:"system"`
	Error  bool `yaml:"error"`
}

// Config is the top-level application configuration.
type Config struct {
	// ServerURL is the base URL of the events REST service.
	ServerURL string `yaml:"server_url"`
	// RefreshSeconds is the background reload interval.
	RefreshSeconds int `yaml:"refresh_seconds"`
	// WaterfallMonthsSpan is how many months past the current one the
	// waterfall calendar shows.
	WaterfallMonthsSpan int `yaml:"waterfall_months_span"`
	// MessageDisplayMS is how long transient filler messages stay up.
	MessageDisplayMS int `yaml:"message_display_ms"`
	// QuickAdd is the initial state of the quick-add toggle.
	QuickAdd bool `yaml:"quick_add"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	Notifications NotificationSettings `yaml:"notifications"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ServerURL:           "http://localhost:5001",
		RefreshSeconds:      60,
		WaterfallMonthsSpan: 4,
		MessageDisplayMS:    800,
		QuickAdd:            false,
		LogFile:             "eventdeck.log",
		LogLevel:            "info",
		Notifications: NotificationSettings{
			Enabled: true,
			Categories: NotificationCategories{
				Action: true,
				System: true,
				Error:  true,
			},
		},
	}
}

// DefaultPath returns the conventional config location under the user's
// config directory, falling back to the working directory.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "eventdeck.yaml"
	}

	return filepath.Join(base, "eventdeck", "config.yaml")
}

// Load reads the YAML config at path. A missing file is not an error: the
// defaults are returned so a first run works without any setup.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("error reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.ServerURL == "" {
		return errors.New("server_url must not be empty")
	}

	if c.RefreshSeconds <= 0 {
		return errors.New("refresh_seconds must be positive")
	}

	if c.WaterfallMonthsSpan <= 0 {
		return errors.New("waterfall_months_span must be positive")
	}

	if c.MessageDisplayMS <= 0 {
		return errors.New("message_display_ms must be positive")
	}

	return nil
}
