package render

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// JSON writes indented JSON documents.
type JSON struct{}

func (JSON) Name() string        { return "json" }
func (JSON) ContentType() string { return "application/json" }

func (JSON) RenderRecord(w io.Writer, _ *validation.Schema, record model.Record) error {
	return encodeJSON(w, record)
}

func (JSON) RenderResult(w io.Writer, _ *validation.Schema, result validation.Result) error {
	return encodeJSON(w, result)
}

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return errors.Wrap(err, "render: encoding json")
	}
	return nil
}

// YAML writes YAML documents with two-space indentation.
type YAML struct{}

func (YAML) Name() string        { return "yaml" }
func (YAML) ContentType() string { return "application/yaml" }

func (YAML) RenderRecord(w io.Writer, _ *validation.Schema, record model.Record) error {
	return encodeYAML(w, map[string]any(record))
}

func (YAML) RenderResult(w io.Writer, _ *validation.Schema, result validation.Result) error {
	return encodeYAML(w, result)
}

func encodeYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return errors.Wrap(err, "render: encoding yaml")
	}
	return enc.Close()
}
