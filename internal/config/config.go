package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultName     = "solar"
	DefaultTimestep = 86400.0 // one day
	DefaultSteps    = 365
	DefaultRate     = 100.0 // steps per second
	DefaultWorkers  = 1
	DefaultTrail    = 75
	DefaultDataDir  = ".solarsim"
)

type Config struct {
	Name     string         `yaml:"name" toml:"name"`
	Catalog  string         `yaml:"catalog" toml:"catalog"` // path; empty selects the builtin solar system
	Bodies   []string       `yaml:"bodies" toml:"bodies"`   // optional subset of the catalog
	Timestep float64        `yaml:"timestep" toml:"timestep"`
	Steps    int            `yaml:"steps" toml:"steps"`
	Rate     float64        `yaml:"rate" toml:"rate"`
	Workers  int            `yaml:"workers" toml:"workers"`
	Record   RecordConfig   `yaml:"record" toml:"record"`
	View     ViewConfig     `yaml:"view" toml:"view"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

type RecordConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Dir     string `yaml:"dir" toml:"dir"`
	Every   int    `yaml:"every" toml:"every"` // record one row per body every N steps
}

type ViewConfig struct {
	Zoom   float64 `yaml:"zoom" toml:"zoom"`
	Trail  int     `yaml:"trail" toml:"trail"`
	Follow string  `yaml:"follow" toml:"follow"`
}

type DatabaseConfig struct {
	DSN             string        `yaml:"dsn" toml:"dsn"`
	MaxConns        int           `yaml:"max_conns" toml:"max_conns"`
	MinConns        int           `yaml:"min_conns" toml:"min_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" toml:"conn_max_lifetime"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" or "console"
}

func DefaultConfig() *Config {
	return &Config{
		Name:     DefaultName,
		Timestep: DefaultTimestep,
		Steps:    DefaultSteps,
		Rate:     DefaultRate,
		Workers:  DefaultWorkers,
		Record: RecordConfig{
			Dir:   DefaultDataDir,
			Every: 1,
		},
		View: ViewConfig{
			Zoom:  1.0,
			Trail: DefaultTrail,
		},
		Database: DatabaseConfig{
			MaxConns:        4,
			MinConns:        1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML or TOML config (by extension) over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML, or TOML when path ends in .toml.
func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		return toml.NewEncoder(f).Encode(cfg)
	}
	enc := yaml.NewEncoder(f)
	defer enc.Close()
	return enc.Encode(cfg)
}

func (c *Config) Validate() error {
	if c.Timestep <= 0 {
		return fmt.Errorf("timestep must be positive, got %f", c.Timestep)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.Rate < 0 || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return fmt.Errorf("rate must be finite and not negative, got %f", c.Rate)
	}
	if c.Record.Every <= 0 {
		return fmt.Errorf("record.every must be positive, got %d", c.Record.Every)
	}
	if c.View.Zoom <= 0 {
		return fmt.Errorf("view.zoom must be positive, got %f", c.View.Zoom)
	}
	return nil
}
