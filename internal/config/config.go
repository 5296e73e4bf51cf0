package config

import (
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTolerance is used when a request omits epsilon.
	DefaultTolerance = 1e-8

	// DefaultMaxIterations matches the root finder's built-in ceiling.
	DefaultMaxIterations = 100

	// DefaultDerivativeFloor is the smallest |f'(x)| the root finder divides by.
	DefaultDerivativeFloor = 1e-14

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// DefaultFormat is the report format of the solve command.
	DefaultFormat = "markdown"

	DefaultAddress = ":8080"

	// AppName is used for XDG directory paths.
	AppName = "gonewton"
)

// Config holds every gonewton setting. It is built once at startup and
// passed down explicitly.
type Config struct {
	// Tolerance is the epsilon used when a request does not give one.
	Tolerance float64 `yaml:"tolerance"`

	// MaxIterations caps the Newton loop.
	MaxIterations int `yaml:"max_iterations"`

	// DerivativeFloor aborts iteration when |f'(x)| falls below it.
	DerivativeFloor float64 `yaml:"derivative_floor"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Format selects the solve report: markdown, json or text.
	Format string `yaml:"format"`

	// Address is the HTTP listen address of the serve command.
	Address string `yaml:"address"`

	// Metrics exposes /metrics when serving.
	Metrics bool `yaml:"metrics"`
}

// NewConfig returns a Config filled with defaults.
func NewConfig() *Config {
	return &Config{
		Tolerance:       DefaultTolerance,
		MaxIterations:   DefaultMaxIterations,
		DerivativeFloor: DefaultDerivativeFloor,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		Format:          DefaultFormat,
		Address:         DefaultAddress,
		Metrics:         true,
	}
}

// XDGConfigDir returns the XDG config directory for gonewton.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Validate returns the first problem found.
func (c *Config) Validate() error {
	if !positiveFinite(c.Tolerance) {
		return ErrInvalidTolerance
	}
	if c.MaxIterations < 1 {
		return ErrInvalidMaxIterations
	}
	if !positiveFinite(c.DerivativeFloor) {
		return ErrInvalidDerivativeFloor
	}
	switch strings.ToLower(c.Format) {
	case "markdown", "json", "text":
	default:
		return ErrInvalidFormat
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}
	if strings.TrimSpace(c.Address) == "" {
		return ErrEmptyAddress
	}
	return nil
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, ErrInvalidLogLevel
}
