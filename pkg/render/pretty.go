package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

const masked = "********"

var (
	okColor    = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed)
	labelColor = color.New(color.Bold)
)

// Pretty writes human readable lines in field declaration order. Secret
// fields are masked.
type Pretty struct{}

func (Pretty) Name() string        { return "pretty" }
func (Pretty) ContentType() string { return "text/plain" }

func (Pretty) RenderRecord(w io.Writer, s *validation.Schema, record model.Record) error {
	for _, field := range s.Fields() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", labelColor.Sprint(field.DisplayLabel()), displayValue(field, record[field.Name])); err != nil {
			return err
		}
	}
	return nil
}

// RenderResult prints one line per issue, or a single confirmation line when
// the record is valid.
func (Pretty) RenderResult(w io.Writer, s *validation.Schema, result validation.Result) error {
	if result.Valid {
		_, err := fmt.Fprintf(w, "%s%s record is valid\n", okColor.Sprint("✓ "), s.ID())
		return err
	}
	for _, issue := range result.Issues {
		if _, err := fmt.Fprintf(w, "%s %s: %s\n", errorColor.Sprint("✗"), issue.Field, issue.Message); err != nil {
			return err
		}
	}
	return nil
}

func displayValue(field model.Field, value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(typed, ", ")
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	}
	if field.Secret && fmt.Sprint(value) != "" {
		return masked
	}
	return fmt.Sprint(value)
}
