// Package config loads and validates the tradebook configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/tradebook/risk"
	"github.com/rustyeddy/tradebook/stats"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tradebook configuration
type Config struct {
	Risk  RiskConfig  `json:"risk" yaml:"risk"`
	Stats StatsConfig `json:"stats" yaml:"stats"`
	Store StoreConfig `json:"store" yaml:"store"`
	Log   LogConfig   `json:"log" yaml:"log"`
}

// RiskConfig controls how stop-loss and target levels are derived
type RiskConfig struct {
	RiskPct   float64 `json:"risk_pct" yaml:"risk_pct"`
	Precision int32   `json:"precision" yaml:"precision"`
	// Equity is the account size used to suggest share counts; 0 disables it.
	Equity float64 `json:"equity,omitempty" yaml:"equity,omitempty"`
}

// RiskPctDecimal returns RiskPct as a decimal fraction.
func (r RiskConfig) RiskPctDecimal() decimal.Decimal {
	return decimal.NewFromFloat(r.RiskPct)
}

type StatsConfig struct {
	DefaultWindow string `json:"default_window" yaml:"default_window"`
}

// StoreConfig selects where the journal is persisted
type StoreConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
}

// Dir is the directory holding the default config and database.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tradebook")
}

// DefaultPath is where the CLI looks for a config file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
// Fields missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, else JSON)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Risk.RiskPct <= 0 || c.Risk.RiskPct > 1 {
		return fmt.Errorf("risk.risk_pct must be between 0 and 1")
	}
	if c.Risk.Precision < risk.DefaultPrecision || c.Risk.Precision > 12 {
		return fmt.Errorf("risk.precision must be between %d and 12", risk.DefaultPrecision)
	}
	if c.Risk.Equity < 0 {
		return fmt.Errorf("risk.equity must not be negative")
	}
	if _, err := stats.ParseWindow(c.Stats.DefaultWindow); err != nil {
		return fmt.Errorf("stats.default_window: %w", err)
	}
	switch c.Store.Type {
	case "memory":
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("store db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("store.type must be 'sqlite' or 'memory'")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Risk: RiskConfig{
			RiskPct:   0.01,
			Precision: risk.DefaultPrecision,
		},
		Stats: StatsConfig{
			DefaultWindow: string(stats.Month),
		},
		Store: StoreConfig{
			Type:   "sqlite",
			DBPath: filepath.Join(Dir(), "tradebook.db"),
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}
