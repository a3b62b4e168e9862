package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateInput(cfg *Config) error {
	if cfg.Input.Suffix == "" {
		return fmt.Errorf("input.suffix must not be empty")
	}
	if strings.ContainsAny(cfg.Input.Suffix, `/\`) {
		return fmt.Errorf("input.suffix %q must not contain path separators", cfg.Input.Suffix)
	}
	for i, pattern := range cfg.Input.Exclude {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("input.exclude[%d] %q is not a valid glob: %w", i, pattern, err)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if cfg.Output.Extension == "" {
		return fmt.Errorf("output.extension must not be empty")
	}
	if strings.ContainsAny(cfg.Output.Extension, `/\`) {
		return fmt.Errorf("output.extension %q must not contain path separators", cfg.Output.Extension)
	}
	if cfg.Output.TSV != "" && filepath.Ext(cfg.Output.TSV) == "."+cfg.Output.Extension {
		return fmt.Errorf("output.tsv %q must not use the diagram extension .%s", cfg.Output.TSV, cfg.Output.Extension)
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %s", cfg.Watch.Debounce)
	}
	if cfg.Watch.Rate < 0 {
		return fmt.Errorf("watch.rate must not be negative, got %v", cfg.Watch.Rate)
	}
	if cfg.Watch.Burst < 1 {
		return fmt.Errorf("watch.burst must be >= 1, got %d", cfg.Watch.Burst)
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history.path must not be empty when history.enabled=true")
	}
	return nil
}

// Validate runs every check and returns all failures.
func Validate(cfg *Config) []error {
	var errs []error

	if err := validateVersion(cfg); err != nil {
		errs = append(errs, err)
	}
	if err := validateInput(cfg); err != nil {
		errs = append(errs, err)
	}
	if err := validateOutput(cfg); err != nil {
		errs = append(errs, err)
	}
	if err := validateWatch(cfg); err != nil {
		errs = append(errs, err)
	}
	if err := validateHistory(cfg); err != nil {
		errs = append(errs, err)
	}

	return errs
}
