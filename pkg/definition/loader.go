package definition

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Store keeps parsed form definitions keyed by form id. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]model.FormModel
}

// Parse decodes a single form definition. Sources ending in .toml are read
// as TOML; anything else is tried as JSON and then YAML. source also feeds
// error messages and the id fallback.
func Parse(data []byte, source string) (model.FormModel, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.FormModel{}, errors.Newf("definition: file %s is empty", source)
	}

	var form model.FormModel
	if strings.EqualFold(filepath.Ext(source), ".toml") {
		if err := toml.Unmarshal(data, &form); err != nil {
			return model.FormModel{}, errors.Wrapf(err, "definition: parse %s: invalid TOML", source)
		}
	} else if err := json.Unmarshal(data, &form); err != nil {
		form = model.FormModel{}
		if yerr := yaml.Unmarshal(data, &form); yerr != nil {
			return model.FormModel{}, errors.Wrapf(yerr, "definition: parse %s: invalid JSON or YAML", source)
		}
	}

	form.ID = strings.TrimSpace(form.ID)
	if form.ID == "" {
		form.ID = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if form.ID == "" || form.ID == "." {
		return model.FormModel{}, errors.Newf("definition: file %s defines an empty form id", source)
	}
	return form, nil
}

// LoadFile reads and parses a definition from disk.
func LoadFile(path string) (model.FormModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormModel{}, errors.Wrapf(err, "definition: read %s", path)
	}
	return Parse(data, path)
}

// LoadFS walks the provided filesystem and parses every JSON, YAML or TOML
// definition.
// When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormModel)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return errors.Wrapf(err, "definition: read %s", path)
		}
		form, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := store.forms[form.ID]; exists {
			return errors.Newf("definition: duplicate form %q (file %s)", form.ID, path)
		}
		store.forms[form.ID] = form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs lists the stored form ids in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.forms))
	for id := range s.forms {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
