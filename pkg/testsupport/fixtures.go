package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// ValidPassword satisfies every password rule of the registration form.
const ValidPassword = "Abc12345!"

// ValidRegistration returns a record that passes the bundled registration
// form. Each call returns a fresh copy.
func ValidRegistration() model.Record {
	return model.Record{
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"email":           "ada@example.com",
		"phoneNumber":     "5551234567",
		"password":        ValidPassword,
		"confirmPassword": ValidPassword,
		"age":             "36",
		"gender":          "female",
		"interests":       []string{"coding", "reading"},
		"birthDate":       "1990-12-10",
	}
}

// RegistrationSchema compiles the bundled registration form, failing the test
// on error.
func RegistrationSchema(t *testing.T) *validation.Schema {
	t.Helper()
	s, err := validation.Compile(definition.Registration())
	if err != nil {
		t.Fatalf("compile registration: %v", err)
	}
	return s
}

// WriteFile writes content under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustLoadErrorMap reads a JSON golden into an ErrorMap.
func MustLoadErrorMap(t *testing.T, path string) validation.ErrorMap {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	var out validation.ErrorMap
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// AssertErrors fails the test with a diff when got and want differ. A nil
// want is treated as an empty map.
func AssertErrors(t *testing.T, want, got validation.ErrorMap) {
	t.Helper()
	if want == nil {
		want = validation.ErrorMap{}
	}
	if got == nil {
		got = validation.ErrorMap{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
