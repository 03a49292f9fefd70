package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validation errors for configuration fields.
var (
	ErrInvalidOutput    = errors.New("invalid output format")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidAttempts  = errors.New("max_attempts must be >= 0")
)

// FieldError ties a validation error to a configuration key.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Validate checks a Config and returns every problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	switch cfg.Output {
	case OutputJSON, OutputYAML, OutputPretty:
	default:
		errs = append(errs, &FieldError{Key: "output", Value: cfg.Output, Err: ErrInvalidOutput})
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, &FieldError{Key: "log_format", Value: cfg.LogFormat, Err: ErrInvalidLogFormat})
	}

	if cfg.LogLevel != "" {
		if _, err := ParseLevel(cfg.LogLevel); err != nil {
			errs = append(errs, &FieldError{Key: "log_level", Value: cfg.LogLevel, Err: ErrInvalidLogLevel})
		}
	}

	if cfg.MaxAttempts < 0 {
		errs = append(errs, &FieldError{Key: "max_attempts", Value: fmt.Sprint(cfg.MaxAttempts), Err: ErrInvalidAttempts})
	}
	return errs
}

// ParseLevel maps a level name onto a slog level. "trace" maps below debug.
func ParseLevel(raw string) (slog.Level, error) {
	if strings.EqualFold(strings.TrimSpace(raw), "trace") {
		return slog.Level(-8), nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, err
	}
	return level, nil
}
