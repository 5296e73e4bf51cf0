package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidTolerance is returned when the default tolerance is not a
	// positive finite number.
	ErrInvalidTolerance = errors.New("invalid tolerance: must be a positive number")

	// ErrInvalidMaxIterations is returned when the iteration ceiling is below 1.
	ErrInvalidMaxIterations = errors.New("invalid max iterations: must be at least 1")

	// ErrInvalidDerivativeFloor is returned when the near-zero derivative
	// threshold is not a positive finite number.
	ErrInvalidDerivativeFloor = errors.New("invalid derivative floor: must be a positive number")

	// ErrInvalidFormat is returned for an unknown report format.
	ErrInvalidFormat = errors.New("invalid output format: must be markdown, json or text")

	// ErrInvalidLogLevel is returned for an unknown log level.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn or error")

	// ErrInvalidLogFormat is returned for an unknown log format.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrEmptyAddress is returned when the HTTP listen address is empty.
	ErrEmptyAddress = errors.New("invalid listen address: must not be empty")

	// ErrConfigNotFound is returned when an explicitly named configuration
	// file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
