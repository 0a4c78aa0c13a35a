// =============================================================================
// Seatmap Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. Main Config (config.yaml): optional YAML file
//   3. Environment: SEATMAP_* variables, optionally read from a .env file
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file used when none is given.
const DefaultConfigFile = "config.yaml"

// Environment variables overriding file values.
const (
	EnvLogLevel       = "SEATMAP_LOG_LEVEL"
	EnvOutputSuffix   = "SEATMAP_OUTPUT_SUFFIX"
	EnvOutputFormat   = "SEATMAP_OUTPUT_FORMAT"
	EnvAvailableKey   = "SEATMAP_AVAILABLE_KEY"
	EnvValidateOutput = "SEATMAP_VALIDATE_OUTPUT"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error", "none"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// LogFile is an optional path the log is also written to.
	// Default: "" (console only)
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputSuffix replaces everything from the first "." of the input
	// file name.
	// Default: "_parsed"
	OutputSuffix string `yaml:"output_suffix"`

	// OutputFormat selects the writer.
	// Valid values: "json", "xlsx"
	// Default: "json"
	OutputFormat string `yaml:"output_format"`

	// Indent is the JSON indentation string; empty writes compact JSON.
	// Default: ""
	Indent string `yaml:"indent"`

	// ValidateOutput checks converted data against the output contract
	// before writing.
	// Default: true
	ValidateOutput bool `yaml:"validate_output"`

	// =========================================================================
	// PARSING SETTINGS
	// =========================================================================

	// AvailableDefinitionKey is the IATA seat definition reference that
	// marks a seat as available.
	// Default: "SD4"
	AvailableDefinitionKey string `yaml:"available_definition_key"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	config := &Config{ValidateOutput: true}
	applyDefaults(config)
	return config
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadConfig loads the configuration.
//
// PARAMETERS:
//   - path: The path to the YAML configuration file.
//   - explicit: Whether the path was requested by the user. A missing file
//     is an error only when explicit; otherwise defaults are used.
//
// RETURNS:
//   - A pointer to the loaded Config.
//   - An error if the file cannot be read or parsed, or the result is invalid.
func LoadConfig(path string, explicit bool) (*Config, error) {
	// Values from .env never replace variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := applyEnvironment(config); err != nil {
		return nil, err
	}

	// Apply default values.
	applyDefaults(config)

	// Validate the configuration.
	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvironment overrides file values with SEATMAP_* variables.
func applyEnvironment(config *Config) error {
	config.LogLevel = getEnv(EnvLogLevel, config.LogLevel)
	config.OutputSuffix = getEnv(EnvOutputSuffix, config.OutputSuffix)
	config.OutputFormat = getEnv(EnvOutputFormat, config.OutputFormat)
	config.AvailableDefinitionKey = getEnv(EnvAvailableKey, config.AvailableDefinitionKey)

	validateOutput, err := getEnvBool(EnvValidateOutput, config.ValidateOutput)
	if err != nil {
		return err
	}
	config.ValidateOutput = validateOutput
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	if config.OutputSuffix == "" {
		config.OutputSuffix = "_parsed"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = "json"
	}
	if config.AvailableDefinitionKey == "" {
		config.AvailableDefinitionKey = "SD4"
	}
}

// validate validates the configuration.
func validate(config *Config) error {
	config.LogLevel = strings.ToLower(config.LogLevel)
	if _, ok := levels[config.LogLevel]; !ok {
		return fmt.Errorf("unknown log level %q (valid: debug, info, warn, error, none)", config.LogLevel)
	}

	config.OutputFormat = strings.ToLower(config.OutputFormat)
	switch config.OutputFormat {
	case "json", "xlsx":
	default:
		return fmt.Errorf("unknown output format %q (valid: json, xlsx)", config.OutputFormat)
	}

	if strings.ContainsAny(config.OutputSuffix, `/\`) {
		return fmt.Errorf("output suffix %q must not contain a path separator", config.OutputSuffix)
	}
	if strings.TrimSpace(config.Indent) != "" {
		return fmt.Errorf("indent must contain only whitespace")
	}
	return nil
}

// =============================================================================
// ENVIRONMENT HELPERS
// =============================================================================

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback, fmt.Errorf("invalid value %q for %s: %w", val, key, err)
	}
	return b, nil
}
