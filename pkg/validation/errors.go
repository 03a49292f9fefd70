package validation

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrInvalidDefinition marks every error returned by Compile. Definition
// errors are programmer errors and surface once, at initialization.
var ErrInvalidDefinition = errors.New("validation: invalid form definition")

// DefinitionError locates a definition problem on a field and, when relevant,
// on the rule at Index within that field's validations.
type DefinitionError struct {
	Field string
	Index int
	Kind  string
	Err   error
}

func (e *DefinitionError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("validation: %v", e.Err)
	case e.Kind == "":
		return fmt.Sprintf("validation: field %q: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("validation: field %q rule %d (%s): %v", e.Field, e.Index, e.Kind, e.Err)
	}
}

func (e *DefinitionError) Unwrap() error { return e.Err }

func formError(err error) error {
	return errors.Mark(&DefinitionError{Index: -1, Err: err}, ErrInvalidDefinition)
}

func fieldError(field string, err error) error {
	return errors.Mark(&DefinitionError{Field: field, Index: -1, Err: err}, ErrInvalidDefinition)
}

func ruleError(field string, index int, kind string, err error) error {
	return errors.Mark(&DefinitionError{Field: field, Index: index, Kind: kind, Err: err}, ErrInvalidDefinition)
}
