package validation

import "github.com/goliatone/go-formkit/pkg/model"

// Issue is a single field violation in a presentation-friendly shape.
type Issue struct {
	Field   string `json:"field" yaml:"field"`
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Result captures the outcome of validating a whole record.
type Result struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Check validates record and reports the outcome with issues in declaration
// order.
func (s *Schema) Check(record model.Record) Result {
	errs := s.Validate(record)
	return Result{Valid: errs.Empty(), Issues: s.Issues(errs)}
}
