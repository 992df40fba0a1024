// Package config loads the application's yaml configuration, with defaults
// and environment overrides for the common knobs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/genomatch/genomatch/internal/ratelimit"
)

// Config is the full application configuration.
type Config struct {
	// Assembly is the genome build retained from the reference database.
	// Matching is positional, so both inputs must use this build.
	Assembly    string       `yaml:"assembly"`
	DatabaseDSN string       `yaml:"database_dsn"`
	Debug       bool         `yaml:"debug"`
	Export      ExportConfig `yaml:"export"`
	AI          AIConfig     `yaml:"ai"`
}

// ExportConfig controls the delimited result export.
type ExportConfig struct {
	Format string `yaml:"format"` // "csv" or "tsv"
}

// AIConfig points at the local explanation model.
type AIConfig struct {
	BaseURL     string           `yaml:"base_url"`
	Model       string           `yaml:"model"`
	MaxFindings int              `yaml:"max_findings"`
	RateLimit   ratelimit.Config `yaml:"rate_limit"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Assembly:    "GRCh37",
		DatabaseDSN: "file:genomatch.db",
		Export:      ExportConfig{Format: "csv"},
		AI: AIConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "llama3",
			MaxFindings: 20,
			RateLimit:   ratelimit.DefaultConfig(),
		},
	}
}

// Load parses yaml bytes over the defaults.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// LoadFile reads and parses a yaml config file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Load(data)
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.Assembly == "" {
		c.Assembly = def.Assembly
	}
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = def.DatabaseDSN
	}
	if c.Export.Format == "" {
		c.Export.Format = def.Export.Format
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = def.AI.BaseURL
	}
	if c.AI.Model == "" {
		c.AI.Model = def.AI.Model
	}
	if c.AI.MaxFindings <= 0 {
		c.AI.MaxFindings = def.AI.MaxFindings
	}
	return c
}

// ApplyEnv overlays environment variables on the loaded config. The .env
// loading itself happens in main.
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("GENOMATCH_ASSEMBLY"); v != "" {
		c.Assembly = v
	}
	if v := os.Getenv("GENOMATCH_DB"); v != "" {
		c.DatabaseDSN = v
	}
	if v := os.Getenv("GENOMATCH_OLLAMA_URL"); v != "" {
		c.AI.BaseURL = v
	}
	if v := os.Getenv("GENOMATCH_MODEL"); v != "" {
		c.AI.Model = v
	}
	return c
}

// Delimiter returns the export delimiter for the configured format.
func (c Config) Delimiter() rune {
	if c.Export.Format == "tsv" {
		return '\t'
	}
	return ','
}
