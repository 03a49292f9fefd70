package definition

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

//go:embed forms/*
var embeddedForms embed.FS

// RegistrationID identifies the bundled personal-data registration form.
const RegistrationID = "registration"

// EmbeddedFS returns the bundled form definitions. Callers may pass this
// filesystem to LoadFS.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Registration returns the bundled registration form definition.
func Registration() model.FormModel {
	data, err := fs.ReadFile(EmbeddedFS(), "registration.yaml")
	if err != nil {
		panic(err)
	}
	form, err := Parse(data, "registration.yaml")
	if err != nil {
		panic(err)
	}
	return form
}

// RegistrationSchema compiles the bundled registration form.
func RegistrationSchema() *validation.Schema {
	return validation.MustCompile(Registration())
}
