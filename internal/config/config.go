// Package config provides configuration loading and validation for the gridlayout CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/nikolaydubina/go-grid-layout/layout"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidLogFormat     = errors.New("invalid log format")
	ErrInvalidAlignmentMode = errors.New("invalid alignment mode")
	ErrInvalidOutputStyle   = errors.New("invalid output style")
)

// Output styles.
const (
	StyleTable = "table"
	StyleYAML  = "yaml"
)

// Default configuration values.
const (
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultAlignmentMode = "margins"
	DefaultOutputStyle   = StyleTable
)

// EnvPrefix is prefix of environment variables overriding configuration, e.g. GRIDLAYOUT_LOG_LEVEL.
const EnvPrefix = "GRIDLAYOUT"

// Config holds all configuration for the gridlayout CLI.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Layout LayoutConfig `mapstructure:"layout"`
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LayoutConfig holds defaults applied to grids that do not set them.
type LayoutConfig struct {
	AlignmentMode        string `mapstructure:"alignment_mode"`
	RowOrderPreserved    bool   `mapstructure:"row_order_preserved"`
	ColumnOrderPreserved bool   `mapstructure:"column_order_preserved"`
}

// OutputConfig holds rendering configuration.
type OutputConfig struct {
	Style string `mapstructure:"style"`
}

// LoadConfig loads configuration from file and environment variables.
// Empty path looks for gridlayout.yaml in working directory, missing file is not an error then.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("gridlayout")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("log.level", DefaultLogLevel)
	viperCfg.SetDefault("log.format", DefaultLogFormat)

	viperCfg.SetDefault("layout.alignment_mode", DefaultAlignmentMode)
	viperCfg.SetDefault("layout.row_order_preserved", false)
	viperCfg.SetDefault("layout.column_order_preserved", false)

	viperCfg.SetDefault("output.style", DefaultOutputStyle)
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}

	if _, err := layout.ParseAlignmentMode(c.Layout.AlignmentMode); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAlignmentMode, c.Layout.AlignmentMode)
	}

	switch c.Output.Style {
	case StyleTable, StyleYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutputStyle, c.Output.Style)
	}

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return level, nil
}

// NewLogger builds logger writing to w in configured format at configured level.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Level)
	opts := &slog.HandlerOptions{Level: level}

	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Mode is configured alignment mode, margins when invalid.
func (c LayoutConfig) Mode() layout.AlignmentMode {
	mode, _ := layout.ParseAlignmentMode(c.AlignmentMode)
	return mode
}
