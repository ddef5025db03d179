package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome            = "BATCHPLAN_HOME"
	EnvSamplesPerBatch = "BATCHPLAN_SAMPLES_PER_BATCH"
	EnvLogLevel        = "BATCHPLAN_LOG_LEVEL"
	EnvLogFormat       = "BATCHPLAN_LOG_FORMAT"
	EnvOutputDir       = "BATCHPLAN_OUTPUT_DIR"
)

// ErrInvalidEnv is returned when an environment override cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment override")

// Load builds the effective configuration: defaults, then the YAML file at
// path, then environment overrides. An empty path means the default config
// file, which may be absent; an explicit path must exist. The result is not validated.
func Load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
		logger := GetLogger()
		logger.Debug().Str("path", path).Msg("config file merged")
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := ApplyEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays BATCHPLAN_* environment variables onto cfg.
func ApplyEnv(cfg *Config, lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	if v, ok := lookupEnv(EnvSamplesPerBatch); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvSamplesPerBatch, v)
		}
		cfg.Batch.SamplesPerBatch = n
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		cfg.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvOutputDir); ok && v != "" {
		cfg.Output.Dir = v
	}
	return nil
}
