// Package config provides configuration management for heapscope.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Analysis Analysis `mapstructure:"analysis"`
	History  History  `mapstructure:"history"`
	Storage  Storage  `mapstructure:"storage"`
	Log      Log      `mapstructure:"log"`
}

// Analysis holds traversal budgets and scoring thresholds.
type Analysis struct {
	SnapshotDir         string `mapstructure:"snapshot_dir"`
	OutputDir           string `mapstructure:"output_dir"`
	MaxDepth            int    `mapstructure:"max_depth"`
	MaxChildrenPerLevel int    `mapstructure:"max_children_per_level"`
	MaxNodes            int    `mapstructure:"max_nodes"`
	TimeBudgetMS        int    `mapstructure:"time_budget_ms"`
	FollowArrays        bool   `mapstructure:"follow_arrays"`
	FollowObjects       bool   `mapstructure:"follow_objects"`
	ShowPrimitives      bool   `mapstructure:"show_primitives"`
}

// History holds the analysis-run history database configuration.
// The analysis core never persists anything; this store is written by the
// CLI layer after results are produced.
type History struct {
	Enabled  bool   `mapstructure:"enabled"`
	Type     string `mapstructure:"type"` // sqlite, mysql, or postgres
	Path     string `mapstructure:"path"` // sqlite file path
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Storage holds snapshot file storage configuration.
type Storage struct {
	Type      string `mapstructure:"type"` // local or cos
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`
	Scheme    string `mapstructure:"scheme"`
	LocalPath string `mapstructure:"local_path"`
}

// Log holds logging configuration.
type Log struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("heapscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/heapscope")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file: defaults apply.
		} else if os.IsNotExist(err) {
			// File specified but absent: defaults apply.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("HEAPSCOPE")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw content (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. The analysis defaults mirror
// the explorer's built-in budgets.
func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.snapshot_dir", "./snapshots")
	v.SetDefault("analysis.output_dir", "./output")
	v.SetDefault("analysis.max_depth", 2)
	v.SetDefault("analysis.max_children_per_level", 5)
	v.SetDefault("analysis.max_nodes", 100)
	v.SetDefault("analysis.time_budget_ms", 15000)
	v.SetDefault("analysis.follow_arrays", true)
	v.SetDefault("analysis.follow_objects", true)
	v.SetDefault("analysis.show_primitives", true)

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.type", "sqlite")
	v.SetDefault("history.path", "./heapscope.db")
	v.SetDefault("history.port", 5432)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./snapshots")

	v.SetDefault("log.level", "info")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.History.Type {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported history database type: %s", c.History.Type)
	}

	if c.History.Enabled {
		if c.History.Type == "sqlite" && c.History.Path == "" {
			return fmt.Errorf("history path is required for sqlite")
		}
		if c.History.Type != "sqlite" && c.History.Host == "" {
			return fmt.Errorf("history host is required for %s", c.History.Type)
		}
	}

	if c.Analysis.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	if c.Analysis.MaxNodes < 1 {
		return fmt.Errorf("max_nodes must be at least 1")
	}

	return nil
}
