package commands

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
)

var (
	okColor    = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed)
)

// loadSchema compiles the configured definition, or the bundled registration
// form when none is configured.
func (a *app) loadSchema() (*validation.Schema, error) {
	form := definition.Registration()
	if a.cfg.Form != "" {
		loaded, err := definition.LoadFile(a.cfg.Form)
		if err != nil {
			return nil, err
		}
		form = loaded
	}
	s, err := validation.Compile(form)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("schema compiled", "form", s.ID(), "fields", len(s.Fields()))
	return s, nil
}

// readRecord decodes a JSON or YAML record. "-" reads from in.
func readRecord(path string, in io.Reader) (model.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading record %s", path)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.Newf("record %s is empty", path)
	}

	var record model.Record
	if err := json.Unmarshal(data, &record); err == nil {
		return record, nil
	}
	record = nil
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrapf(err, "parsing record %s: invalid JSON or YAML", path)
	}
	return record, nil
}

// renderer returns the renderer for the configured output format.
func (a *app) renderer() (render.Renderer, error) {
	return render.Default().Get(a.cfg.Output)
}
