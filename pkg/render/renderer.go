package render

import (
	"io"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Renderer writes submitted records and validation results in one output
// format.
type Renderer interface {
	Name() string
	ContentType() string
	RenderRecord(w io.Writer, s *validation.Schema, record model.Record) error
	RenderResult(w io.Writer, s *validation.Schema, result validation.Result) error
}
