package sqlstore

import "errors"

var (
	// ErrMissingConfig is returned by configuration validation when a
	// required value is blank after environment expansion.
	ErrMissingConfig = errors.New("required configuration value is missing")

	// ErrInvalidTemplate is returned when the configured SQL template
	// cannot serve username lookups.
	ErrInvalidTemplate = errors.New("invalid sql template")

	// ErrUnsupportedDriver is returned when the connection URL names a
	// scheme with no registered driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrConnectionFailed wraps connectivity failures from the probe in
	// ValidateConfiguration and from provider construction.
	ErrConnectionFailed = errors.New("database connection failed")
)
