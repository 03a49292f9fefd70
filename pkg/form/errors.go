package form

import "errors"

var (
	// ErrUnknownField is returned when an event names a field the schema does
	// not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrUnknownOption is returned when Toggle names an option the field does
	// not offer.
	ErrUnknownOption = errors.New("form: unknown option")
	// ErrNotArrayField is returned when Toggle targets a scalar field.
	ErrNotArrayField = errors.New("form: field is not an array")
	// ErrNilContext is returned by Submit when called without a context.
	ErrNilContext = errors.New("form: context is required")
)
