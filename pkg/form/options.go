package form

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-formkit/pkg/model"
)

// SubmitFunc receives a copy of the record once it validates.
type SubmitFunc func(ctx context.Context, values model.Record) error

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitFunc sets the callback invoked on a successful submit.
func WithSubmitFunc(fn SubmitFunc) Option {
	return func(c *Controller) {
		c.onSubmit = fn
	}
}

// WithLogger routes controller diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValidateOnChange toggles validation on OnFieldChange/Toggle. Enabled by
// default.
func WithValidateOnChange(enabled bool) Option {
	return func(c *Controller) {
		c.validateOnChange = enabled
	}
}

// WithValidateOnBlur toggles validation on OnBlur. Enabled by default.
func WithValidateOnBlur(enabled bool) Option {
	return func(c *Controller) {
		c.validateOnBlur = enabled
	}
}

// WithInitialValues seeds declared fields with values. Unknown keys are
// ignored and the fields stay pristine.
func WithInitialValues(values model.Record) Option {
	return func(c *Controller) {
		c.initial = values.Clone()
	}
}

// WithResetOnSubmit restores the initial record after a successful submit.
func WithResetOnSubmit() Option {
	return func(c *Controller) {
		c.resetOnSubmit = true
	}
}
