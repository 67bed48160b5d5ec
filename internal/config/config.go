// Package config loads the styling section of vango.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FileName is the project configuration file
const FileName = "vango.json"

// Config represents the vango.json configuration
type Config struct {
	// Styling configuration
	Styling *StylingConfig `json:"styling,omitempty" validate:"required"`

	// Logging configuration
	Log *LogConfig `json:"log,omitempty" validate:"required"`
}

// StylingConfig contains styling-related configuration
type StylingConfig struct {
	// Atomic style compilation and injection
	Atomic *AtomicConfig `json:"atomic,omitempty" validate:"required"`
}

// AtomicConfig contains atomic style configuration
type AtomicConfig struct {
	// Directory holding YAML style sources
	SourceDir string `json:"sourceDir,omitempty" validate:"required"`

	// Directory compiled bundles are written to
	OutputDir string `json:"outputDir,omitempty" validate:"required"`

	// Directory of the compile cache; empty disables caching
	CacheDir string `json:"cacheDir,omitempty"`

	// Default text direction for render
	RTL bool `json:"rtl,omitempty"`

	// id of the <style> element rules are injected into
	StyleID string `json:"styleId,omitempty" validate:"required"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `json:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	Human bool   `json:"human,omitempty"`
}

// Load loads configuration from vango.json
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, FileName)

	// Return default config if no file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save saves configuration to vango.json
func Save(config *Config, projectPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, FileName), data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Styling: &StylingConfig{
			Atomic: &AtomicConfig{
				SourceDir: "app/styles",
				OutputDir: "public/styles",
				CacheDir:  ".vango/cache",
				StyleID:   "vango-atomic",
			},
		},
		Log: &LogConfig{
			Level: "info",
		},
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Styling == nil {
		config.Styling = defaults.Styling
	} else if config.Styling.Atomic == nil {
		config.Styling.Atomic = defaults.Styling.Atomic
	} else {
		atomic := config.Styling.Atomic
		if atomic.SourceDir == "" {
			atomic.SourceDir = defaults.Styling.Atomic.SourceDir
		}
		if atomic.OutputDir == "" {
			atomic.OutputDir = defaults.Styling.Atomic.OutputDir
		}
		if atomic.StyleID == "" {
			atomic.StyleID = defaults.Styling.Atomic.StyleID
		}
	}

	if config.Log == nil {
		config.Log = defaults.Log
	} else if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
}

var validate = validator.New()

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// convertValidationError normalizes validator errors into a ValidationError
func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		fe := ves[0]
		field := jsonishFieldName(fe)
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag()),
			Err:     err,
		}
	}
	return &ValidationError{Field: "config", Message: err.Error(), Err: err}
}

// jsonishFieldName turns "Config.Styling.Atomic.SourceDir" into
// "styling.atomic.sourcedir"
func jsonishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}
