package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Controller owns the record of one form instance. It routes change, blur and
// toggle events into the record, keeps the visible error map current and gates
// submission on a clean validation pass. A Controller is not safe for
// concurrent use.
type Controller struct {
	schema *validation.Schema
	logger *slog.Logger

	values model.Record
	errors validation.ErrorMap
	status map[string]Status

	initial          model.Record
	onSubmit         SubmitFunc
	validateOnChange bool
	validateOnBlur   bool
	resetOnSubmit    bool
	submitCount      int
}

// New creates a controller for s with every declared field at its default.
func New(s *validation.Schema, opts ...Option) *Controller {
	if s == nil {
		panic("form: schema is nil")
	}
	c := &Controller{
		schema:           s,
		logger:           logging.NewDiscard(),
		validateOnChange: true,
		validateOnBlur:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.Reset()
	return c
}

// Schema returns the compiled schema backing the controller.
func (c *Controller) Schema() *validation.Schema { return c.schema }

// OnFieldChange stores raw verbatim under name, marks the field touched and
// revalidates it together with every field whose rules read it. Dependents
// that are pristine and still blank are left alone.
func (c *Controller) OnFieldChange(name string, raw any) error {
	field, ok := c.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if items, ok := raw.([]string); ok {
		raw = append([]string{}, items...)
	}
	c.values[name] = raw
	c.touch(name)
	c.logger.Debug("field changed", "form", c.schema.ID(), "field", name, valueAttr(field, raw))

	if c.validateOnChange {
		c.revalidate(name)
	}
	return nil
}

// OnBlur marks name touched and validates it when blur validation is on.
func (c *Controller) OnBlur(name string) error {
	if !c.schema.Has(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.touch(name)
	if c.validateOnBlur {
		c.revalidate(name)
	}
	return nil
}

// Toggle adds option to (checked) or removes it from (unchecked) the set held
// by array field name. Selected options keep the order the field declares.
func (c *Controller) Toggle(name, option string, checked bool) error {
	field, ok := c.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if field.Type != model.FieldTypeArray {
		return fmt.Errorf("%w: %q", ErrNotArrayField, name)
	}
	if len(field.Options) > 0 && indexOf(field.Options, option) < 0 {
		return fmt.Errorf("%w: %q has no option %q", ErrUnknownOption, name, option)
	}

	current := toStrings(c.values[name])
	next := make([]string, 0, len(current)+1)
	for _, item := range current {
		if item != option {
			next = append(next, item)
		}
	}
	if checked {
		next = append(next, option)
		if len(field.Options) > 0 {
			next = orderByOptions(next, field.Options)
		}
	}
	return c.OnFieldChange(name, next)
}

// Submit validates the whole record and marks every field touched. When no
// field is invalid the submit callback runs exactly once with a copy of the
// record and Submit reports true; otherwise the callback is skipped and the
// errors stay visible.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	if ctx == nil {
		return false, ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.submitCount++

	errs := c.schema.Validate(c.values)
	for _, field := range c.schema.Fields() {
		if _, invalid := errs[field.Name]; invalid {
			c.status[field.Name] = StatusInvalid
		} else {
			c.status[field.Name] = StatusValid
		}
	}
	c.errors = errs

	if !errs.Empty() {
		c.logger.Info("submit blocked", "form", c.schema.ID(), "invalid", errs.Fields(), "attempt", c.submitCount)
		return false, nil
	}

	if c.onSubmit != nil {
		if err := c.onSubmit(ctx, c.values.Clone()); err != nil {
			c.logger.Warn("submit callback failed", "form", c.schema.ID(), "error", err)
			return false, fmt.Errorf("form: submit %s: %w", c.schema.ID(), err)
		}
	}
	c.logger.Info("form submitted", "form", c.schema.ID(), "attempt", c.submitCount)

	if c.resetOnSubmit {
		c.Reset()
	}
	return true, nil
}

// Reset discards the record, errors and interaction state and restores the
// initial values.
func (c *Controller) Reset() {
	c.values = c.schema.Defaults()
	for name, value := range c.initial {
		if c.schema.Has(name) {
			c.values[name] = normalizeInitial(c.schema, name, value)
		}
	}
	c.errors = make(validation.ErrorMap)
	c.status = make(map[string]Status, len(c.values))
	for name := range c.values {
		c.status[name] = StatusPristine
	}
	c.submitCount = 0
}

// Values returns a copy of the record.
func (c *Controller) Values() model.Record { return c.values.Clone() }

// Value returns the raw value held for name.
func (c *Controller) Value(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Errors returns a copy of the visible error map: violations of fields that
// have been validated since they were touched or submitted.
func (c *Controller) Errors() validation.ErrorMap { return c.errors.Clone() }

// Error returns the visible message for name, or "".
func (c *Controller) Error(name string) string { return c.errors[name] }

// Issues returns the visible errors in declaration order.
func (c *Controller) Issues() []validation.Issue { return c.schema.Issues(c.errors) }

// Status returns the interaction state of name. Unknown fields are pristine.
func (c *Controller) Status(name string) Status { return c.status[name] }

// Touched reports whether name has received any interaction.
func (c *Controller) Touched(name string) bool {
	return c.status[name] != StatusPristine
}

// Valid reports whether the whole record currently validates, regardless of
// which fields have been touched.
func (c *Controller) Valid() bool {
	return c.schema.Validate(c.values).Empty()
}

// SubmitCount reports how many times Submit ran since the last Reset.
func (c *Controller) SubmitCount() int { return c.submitCount }

func (c *Controller) touch(name string) {
	if c.status[name] == StatusPristine {
		c.status[name] = StatusTouched
	}
}

func (c *Controller) revalidate(name string) {
	targets := []string{name}
	for _, dep := range c.schema.Dependents(name) {
		// a blank pristine dependent would only report required early
		if c.status[dep] == StatusPristine && validation.Empty(c.values[dep]) {
			continue
		}
		targets = append(targets, dep)
	}
	for _, target := range targets {
		msg, ok := c.schema.ValidateField(target, c.values)
		if ok {
			delete(c.errors, target)
			c.status[target] = StatusValid
		} else {
			c.errors[target] = msg
			c.status[target] = StatusInvalid
		}
		c.logger.Log(context.Background(), logging.LevelTrace, "field validated",
			"form", c.schema.ID(), "field", target, "status", c.status[target].String(), "trigger", name)
	}
}

func valueAttr(field model.Field, raw any) slog.Attr {
	if field.Secret {
		return logging.Secret("value", raw)
	}
	return slog.Any("value", raw)
}

func normalizeInitial(s *validation.Schema, name string, value any) any {
	field, _ := s.Field(name)
	if field.Type == model.FieldTypeArray {
		return toStrings(value)
	}
	return value
}

func toStrings(value any) []string {
	switch typed := value.(type) {
	case []string:
		return append([]string{}, typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{}
	}
}

func orderByOptions(selected, options []string) []string {
	out := make([]string, 0, len(selected))
	for _, option := range options {
		if indexOf(selected, option) >= 0 {
			out = append(out, option)
		}
	}
	return out
}

func indexOf(list []string, value string) int {
	for i, item := range list {
		if item == value {
			return i
		}
	}
	return -1
}
