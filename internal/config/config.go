package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ecmhaul/haulkeep/internal/job"
	"github.com/ecmhaul/haulkeep/internal/logger"
	"github.com/ecmhaul/haulkeep/internal/manager"
)

// FileConfig represents the top-level TOML structure.
//
//	[store]
//	dsn = "data"                # data directory, or sqlite://records.db
//	[log]
//	dir = "logs"
//	[jobs]
//	statuses = ["Scheduled", "In Progress", "Completed", "Cancelled"]
//	strict_transitions = false
type FileConfig struct {
	Store StoreConfig `toml:"store" mapstructure:"store"`
	Log   *LogConfig  `toml:"log" mapstructure:"log"`
	Jobs  JobsConfig  `toml:"jobs" mapstructure:"jobs"`
}

type StoreConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

type LogConfig struct {
	Dir        string `toml:"dir" mapstructure:"dir"`
	Level      string `toml:"level" mapstructure:"level"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
}

type JobsConfig struct {
	Statuses          []string `toml:"statuses" mapstructure:"statuses"`
	StrictTransitions bool     `toml:"strict_transitions" mapstructure:"strict_transitions"`
}

// Config is the resolved runtime configuration.
type Config struct {
	DSN     string
	Log     logger.Config
	Manager manager.Options
}

// LoadConfig reads a TOML config file. An empty path or a missing file is
// not an error: defaults apply. Unknown status names are rejected at load so
// a typo does not silently shrink the accepted set.
func LoadConfig(path string) (*Config, error) {
	fc := FileConfig{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v := viper.New()
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			if err := v.Unmarshal(&fc); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}
	return resolve(fc)
}

func resolve(fc FileConfig) (*Config, error) {
	statuses, err := job.ParseStatusSet(fc.Jobs.Statuses)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		DSN: fc.Store.DSN,
		Manager: manager.Options{
			Statuses:          statuses,
			StrictTransitions: fc.Jobs.StrictTransitions,
		},
	}
	if fc.Log != nil {
		cfg.Log = logger.Config{
			Dir:        fc.Log.Dir,
			Level:      logger.ParseLevel(fc.Log.Level),
			MaxSizeMB:  fc.Log.MaxSizeMB,
			MaxBackups: fc.Log.MaxBackups,
			MaxAgeDays: fc.Log.MaxAgeDays,
			Compress:   fc.Log.Compress,
		}
	}
	return cfg, nil
}
