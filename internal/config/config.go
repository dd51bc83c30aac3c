// Package config loads the analyzer's optional configuration file. Defaults
// are always valid; a missing file is not an error.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete recex-analyzer configuration
type Config struct {
	// Output is the default report path when --output is not given
	Output string `json:"output" mapstructure:"output"`

	// Blacklist / Whitelist are default status-kind filters, overridden by
	// the corresponding flags. Setting both is rejected at startup.
	Blacklist []string `json:"blacklist,omitempty" mapstructure:"blacklist"`
	Whitelist []string `json:"whitelist,omitempty" mapstructure:"whitelist"`

	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// HistoryConfig controls the local run-history database
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path,omitempty" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Output: "analysis.json",
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "human",
		},
	}
}

// Dir returns the analyzer's config/state directory (~/.recex-analyzer).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".recex-analyzer"), nil
}

// Load reads configuration from dir/config.json. Pass the result of Dir()
// normally; tests pass a temp directory. A missing file yields defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output", "analysis.json")
	v.SetDefault("history.enabled", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "human")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to dir/config.json
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
