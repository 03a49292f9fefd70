package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Theme captures the prefix printed before validation messages.
type Theme struct {
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithConfirmSubmit asks for confirmation before submitting.
func WithConfirmSubmit(enabled bool) Option {
	return func(s *Session) {
		s.confirmSubmit = enabled
	}
}

// WithMaxAttempts bounds how many times a single field is prompted while it
// stays invalid. Zero means no limit.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithWidgets overrides the registry that picks the prompt used per field.
func WithWidgets(registry *widgets.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.widgets = registry
		}
	}
}

// WithTheme overrides the message prefix.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// Session walks the fields of a form controller, prompting for each value and
// re-prompting while the controller reports an error for it.
type Session struct {
	controller    *form.Controller
	driver        Driver
	widgets       *widgets.Registry
	confirmSubmit bool
	maxAttempts   int
	theme         Theme
}

// NewSession prepares a session over controller. The survey driver is used
// unless WithDriver overrides it.
func NewSession(controller *form.Controller, opts ...Option) *Session {
	s := &Session{
		controller: controller,
		widgets:    widgets.NewRegistry(),
		theme:      Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run prompts every field, then submits. Fields left invalid by a failed
// submit (a dependency changed after they were answered) are prompted again
// before the next attempt. The submitted record is returned.
func (s *Session) Run(ctx context.Context) (model.Record, error) {
	if ctx == nil {
		return nil, fmt.Errorf("prompt: context is required")
	}
	fields := s.controller.Schema().Fields()

	pending := fields
	for {
		for _, field := range pending {
			if err := s.promptField(ctx, field); err != nil {
				return nil, err
			}
		}

		if s.confirmSubmit {
			ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrAborted
			}
		}

		submitted, err := s.controller.Submit(ctx)
		if err != nil {
			return nil, err
		}
		if submitted {
			return s.controller.Values(), nil
		}

		pending = pending[:0:0]
		for _, field := range fields {
			if msg := s.controller.Error(field.Name); msg != "" {
				if err := s.info(ctx, s.theme.ErrorPrefix+msg); err != nil {
					return nil, err
				}
				pending = append(pending, field)
			}
		}
	}
}

func (s *Session) promptField(ctx context.Context, field model.Field) error {
	for attempt := 1; ; attempt++ {
		if err := s.ask(ctx, field); err != nil {
			return err
		}
		if err := s.controller.OnBlur(field.Name); err != nil {
			return err
		}
		msg := s.controller.Error(field.Name)
		if msg == "" {
			return nil
		}
		if err := s.info(ctx, s.theme.ErrorPrefix+msg); err != nil {
			return err
		}
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return fmt.Errorf("%w: %s: %s", ErrTooManyAttempts, field.Name, msg)
		}
	}
}

func (s *Session) ask(ctx context.Context, field model.Field) error {
	current, _ := s.controller.Value(field.Name)

	switch s.widgetFor(field) {
	case widgets.WidgetMultiSelect:
		selected := toStrings(current)
		indices, err := s.driver.MultiSelect(ctx, SelectConfig{
			Message:  field.DisplayLabel(),
			Options:  field.Options,
			Defaults: indicesOf(field.Options, selected),
			Help:     field.Placeholder,
		})
		if err != nil {
			return err
		}
		chosen := valuesFromIndices(field.Options, indices)
		for _, option := range field.Options {
			want := indexOf(chosen, option) >= 0
			have := indexOf(selected, option) >= 0
			if want == have {
				continue
			}
			if err := s.controller.Toggle(field.Name, option, want); err != nil {
				return err
			}
		}
		return nil

	case widgets.WidgetSelect:
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      field.DisplayLabel(),
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, fmt.Sprint(current)),
			Help:         field.Placeholder,
		})
		if err != nil {
			return err
		}
		value := ""
		if idx >= 0 && idx < len(field.Options) {
			value = field.Options[idx]
		}
		return s.controller.OnFieldChange(field.Name, value)

	case widgets.WidgetPassword:
		response, err := s.driver.Password(ctx, InputConfig{
			Message: field.DisplayLabel(),
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		return s.controller.OnFieldChange(field.Name, response)

	default:
		cfg := InputConfig{
			Message: field.DisplayLabel(),
			Help:    field.Placeholder,
		}
		if field.Type == model.FieldTypeArray {
			cfg.Default = strings.Join(toStrings(current), ", ")
		} else if str, ok := current.(string); ok {
			cfg.Default = str
		}
		response, err := s.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if field.Type == model.FieldTypeArray {
			return s.controller.OnFieldChange(field.Name, splitList(response))
		}
		return s.controller.OnFieldChange(field.Name, response)
	}
}

// widgetFor resolves the widget for field, falling back to free text when the
// resolved widget cannot represent it.
func (s *Session) widgetFor(field model.Field) string {
	widget := s.widgets.ResolveOr(field, widgets.WidgetInput)
	switch widget {
	case widgets.WidgetMultiSelect:
		if field.Type != model.FieldTypeArray || len(field.Options) == 0 {
			return widgets.WidgetInput
		}
	case widgets.WidgetSelect:
		if field.Type == model.FieldTypeArray || len(field.Options) == 0 {
			return widgets.WidgetInput
		}
	}
	return widget
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, msg)
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func toStrings(value any) []string {
	switch typed := value.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
