// Package config reads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/models"
)

// Config holds all user configuration. Every field has a usable default.
type Config struct {
	Storage       StorageConfig       `toml:"storage"`
	Tracking      TrackingConfig      `toml:"tracking"`
	Display       DisplayConfig       `toml:"display"`
	Notifications NotificationsConfig `toml:"notifications"`
	Logging       LoggingConfig       `toml:"logging"`
}

// StorageConfig selects the backend. Path is a file for sqlite and json.
// PostgreSQL connection strings never live here; see the keyring command.
type StorageConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

// TrackingConfig controls day boundaries for streaks and charts
type TrackingConfig struct {
	Timezone  string `toml:"timezone"`   // IANA name, "Local" or empty for the system zone
	DayPolicy string `toml:"day_policy"` // calendar or rolling
}

// DisplayConfig holds presentation overrides
type DisplayConfig struct {
	Currency string `toml:"currency"` // overrides the onboarding currency when set
}

// NotificationsConfig controls desktop notifications for unlocks
type NotificationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoggingConfig controls the log level written to the log file
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Driver: constants.DriverSQLite,
			Path:   constants.DefaultDBPath,
		},
		Tracking: TrackingConfig{
			Timezone:  "Local",
			DayPolicy: string(constants.DayPolicyCalendar),
		},
		Notifications: NotificationsConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads path, falling back to defaults when the file does not exist.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := ExpandPath(path)
	if err != nil {
		return cfg, err
	}

	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(expanded, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("unknown config keys in %s: %s", expanded, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Save writes cfg to path with owner-only permissions
func Save(path string, cfg Config) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks enumerated values and the timezone name
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case constants.DriverSQLite, constants.DriverJSON, constants.DriverPostgres:
	default:
		return fmt.Errorf("storage.driver must be one of sqlite, json, postgres (got %q)", c.Storage.Driver)
	}

	switch constants.DayPolicy(c.Tracking.DayPolicy) {
	case constants.DayPolicyCalendar, constants.DayPolicyRolling:
	default:
		return fmt.Errorf("tracking.day_policy must be calendar or rolling (got %q)", c.Tracking.DayPolicy)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	switch models.Currency(c.Display.Currency) {
	case "", models.CurrencyUSD, models.CurrencyINR:
	default:
		return fmt.Errorf("display.currency must be USD or INR (got %q)", c.Display.Currency)
	}

	return nil
}

// Location resolves the tracking timezone
func (c Config) Location() (*time.Location, error) {
	switch c.Tracking.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Tracking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("tracking.timezone: %w", err)
	}
	return loc, nil
}

// DayPolicy returns the configured streak day policy
func (c Config) DayPolicy() constants.DayPolicy {
	return constants.DayPolicy(c.Tracking.DayPolicy)
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
