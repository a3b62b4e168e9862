package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: PYUML_[SECTION]_[KEY] (e.g., PYUML_OBSERVABILITY_METRICS_ADDR).
func ApplyEnvOverrides(cfg *Config) {
	// Input
	setEnvString(&cfg.Input.Suffix, "PYUML_INPUT_SUFFIX")

	// Output
	setEnvString(&cfg.Output.Extension, "PYUML_OUTPUT_EXTENSION")
	setEnvString(&cfg.Output.TSV, "PYUML_OUTPUT_TSV")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "PYUML_WATCH_DEBOUNCE")
	setEnvFloat64(&cfg.Watch.Rate, "PYUML_WATCH_RATE")
	setEnvInt(&cfg.Watch.Burst, "PYUML_WATCH_BURST")

	// History
	setEnvBool(&cfg.History.Enabled, "PYUML_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "PYUML_HISTORY_PATH")

	// Observability
	setEnvString(&cfg.Observability.MetricsAddr, "PYUML_OBSERVABILITY_METRICS_ADDR")
	setEnvString(&cfg.Observability.OTLPEndpoint, "PYUML_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvString(&cfg.Observability.ServiceName, "PYUML_OBSERVABILITY_SERVICE_NAME")

	normalize(cfg)
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
