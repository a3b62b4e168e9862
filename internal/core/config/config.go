package config

import (
	"time"
)

const DefaultPath = "./pyuml.toml"

type Config struct {
	Version       int           `toml:"version"`
	Input         Input         `toml:"input"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Input struct {
	Suffix  string   `toml:"suffix"`
	Exclude []string `toml:"exclude"` // Glob patterns on file base names
}

type Output struct {
	Extension string `toml:"extension"` // Used when no output path is given
	TSV       string `toml:"tsv"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	Rate     float64       `toml:"rate"` // Regenerations per second
	Burst    int           `toml:"burst"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
	ServiceName  string `toml:"service_name"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
