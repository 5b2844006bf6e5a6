// Package config provides configuration loading and defaults for workpulse.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level workpulse configuration.
type Config struct {
	Source  Source  `mapstructure:"source"`
	Replica Replica `mapstructure:"replica"`
	Scope   Scope   `mapstructure:"scope"`
	Output  Output  `mapstructure:"output"`
	Serve   Serve   `mapstructure:"serve"`
}

// Source describes the remote document store the engine reads from.
type Source struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// Replica configures the local SQLite snapshot of the document store.
type Replica struct {
	Path string `mapstructure:"path"`
}

// Scope holds default computation inputs used when flags are omitted.
type Scope struct {
	WorkspaceID string `mapstructure:"workspace_id"`
	UserID      string `mapstructure:"user_id"`
	Role        string `mapstructure:"role"`
	RangeDays   int    `mapstructure:"range_days"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Serve configures the HTTP API surface.
type Serve struct {
	Addr string `mapstructure:"addr"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed WORKPULSE_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("source.base_url", DefaultSourceBaseURL)
	v.SetDefault("source.api_key", "")
	v.SetDefault("source.timeout_sec", DefaultSourceTimeoutSec)
	v.SetDefault("replica.path", DefaultReplicaPath)
	v.SetDefault("scope.workspace_id", "")
	v.SetDefault("scope.user_id", "")
	v.SetDefault("scope.role", DefaultRole)
	v.SetDefault("scope.range_days", DefaultRangeDays)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("serve.addr", DefaultServeAddr)

	v.SetEnvPrefix("WORKPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand paths.
	cfg.Replica.Path = expandPath(cfg.Replica.Path)

	return &cfg, nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
