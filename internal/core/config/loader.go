package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	normalize(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateInput(&cfg); err != nil {
		return nil, err
	}
	if err := validateOutput(&cfg); err != nil {
		return nil, err
	}
	if err := validateWatch(&cfg); err != nil {
		return nil, err
	}
	if err := validateHistory(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads path, falling back to DefaultConfig when the file does
// not exist and fallback is set.
func LoadOrDefault(path string, fallback bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && fallback && errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Input.Suffix) == "" {
		cfg.Input.Suffix = ".py"
	}
	if strings.TrimSpace(cfg.Output.Extension) == "" {
		cfg.Output.Extension = "puml"
	}

	// Default debounce if not set.
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.Rate == 0 {
		cfg.Watch.Rate = 1
	}
	if cfg.Watch.Burst == 0 {
		cfg.Watch.Burst = 1
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = "data/state/pyuml.db"
	}
	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = "pyuml"
	}
}

func normalize(cfg *Config) {
	cfg.Input.Suffix = strings.TrimSpace(cfg.Input.Suffix)
	cfg.Output.Extension = strings.TrimPrefix(strings.TrimSpace(cfg.Output.Extension), ".")
	cfg.Output.TSV = strings.TrimSpace(cfg.Output.TSV)
	cfg.History.Path = strings.TrimSpace(cfg.History.Path)
	cfg.Observability.MetricsAddr = strings.TrimSpace(cfg.Observability.MetricsAddr)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)

	if len(cfg.Input.Exclude) == 0 {
		return
	}
	patterns := make([]string, 0, len(cfg.Input.Exclude))
	for _, p := range cfg.Input.Exclude {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		patterns = append(patterns, p)
	}
	cfg.Input.Exclude = patterns
}
