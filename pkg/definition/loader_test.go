package definition_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

const contactYAML = `
id: contact
title: Contact
fields:
  - name: email
    label: Email
    validations:
      - kind: required
      - kind: email
        message: Invalid email format
  - name: topics
    type: array
    options: [billing, support]
    validations:
      - kind: minItems
        params:
          value: "1"
`

const feedbackJSON = `{
  "fields": [
    {"name": "score", "type": "number", "validations": [{"kind": "min", "params": {"value": "1"}}]}
  ]
}`

func TestParse_YAML(t *testing.T) {
	form, err := definition.Parse([]byte(contactYAML), "contact.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := model.FormModel{
		ID:    "contact",
		Title: "Contact",
		Fields: []model.Field{
			{
				Name:  "email",
				Label: "Email",
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleRequired},
					{Kind: model.ValidationRuleEmail, Message: "Invalid email format"},
				},
			},
			{
				Name:    "topics",
				Type:    model.FieldTypeArray,
				Options: []string{"billing", "support"},
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleMinItems, Params: map[string]string{"value": "1"}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONWithIDFromSource(t *testing.T) {
	form, err := definition.Parse([]byte(feedbackJSON), "forms/feedback.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form.ID != "feedback" {
		t.Fatalf("id = %q, want feedback", form.ID)
	}
	if len(form.Fields) != 1 || form.Fields[0].Type != model.FieldTypeNumber {
		t.Fatalf("unexpected fields: %+v", form.Fields)
	}
}

const surveyTOML = `
title = "Survey"

[[fields]]
name = "rating"
type = "number"

  [[fields.validations]]
  kind = "min"
  message = "rate at least 1"

    [fields.validations.params]
    value = "1"

[[fields]]
name = "channels"
type = "array"
options = ["email", "sms"]
`

func TestParse_TOML(t *testing.T) {
	form, err := definition.Parse([]byte(surveyTOML), "forms/survey.toml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := model.FormModel{
		ID:    "survey",
		Title: "Survey",
		Fields: []model.Field{
			{
				Name: "rating",
				Type: model.FieldTypeNumber,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "1"}, Message: "rate at least 1"},
				},
			},
			{
				Name:    "channels",
				Type:    model.FieldTypeArray,
				Options: []string{"email", "sms"},
			},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}

	if _, err := definition.Parse([]byte("fields = ["), "broken.toml"); err == nil || !strings.Contains(err.Error(), "invalid TOML") {
		t.Fatalf("expected TOML error, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "empty", data: "  \n", want: "is empty"},
		{name: "garbage", data: "fields: [unterminated", want: "invalid JSON or YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definition.Parse([]byte(tt.data), "broken.yaml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := testsupport.WriteFile(t, t.TempDir(), "contact.yaml", contactYAML)
	form, err := definition.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if form.ID != "contact" {
		t.Fatalf("id = %q", form.ID)
	}

	if _, err := definition.LoadFile(path + ".missing"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"contact.yaml":         {Data: []byte(contactYAML)},
		"nested/feedback.json": {Data: []byte(feedbackJSON)},
		"README.md":            {Data: []byte("# not a form")},
		"extra/survey.toml":    {Data: []byte(surveyTOML)},
	}
	store, err := definition.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "feedback", "survey"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if _, ok := store.Form("feedback"); !ok {
		t.Fatalf("feedback form missing")
	}
	if _, ok := store.Form("README"); ok {
		t.Fatalf("non-definition files must be skipped")
	}
}

func TestLoadFS_DuplicateID(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(contactYAML)},
		"b.yaml": {Data: []byte(contactYAML)},
	}
	_, err := definition.LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), `duplicate form "contact"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestLoadFS_Nil(t *testing.T) {
	store, err := definition.LoadFS(nil)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestEmbeddedFS(t *testing.T) {
	store, err := definition.LoadFS(definition.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if _, ok := store.Form(definition.RegistrationID); !ok {
		t.Fatalf("registration form missing from embedded store, have %v", store.IDs())
	}
}

func TestRegistration(t *testing.T) {
	form := definition.Registration()

	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	want := []string{
		"firstName", "lastName", "email", "phoneNumber", "password",
		"confirmPassword", "age", "gender", "interests", "birthDate",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	password, _ := form.Field("password")
	if !password.Secret || !password.Required() {
		t.Fatalf("password must be secret and required: %+v", password)
	}
	interests, _ := form.Field("interests")
	if diff := cmp.Diff([]string{"coding", "sports", "reading"}, interests.Options); diff != "" {
		t.Fatalf("interest options mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrationSchema(t *testing.T) {
	s := definition.RegistrationSchema()
	if s.ID() != definition.RegistrationID {
		t.Fatalf("schema id = %q", s.ID())
	}
	if diff := cmp.Diff([]string{"confirmPassword"}, s.Dependents("password")); diff != "" {
		t.Fatalf("dependents mismatch (-want +got):\n%s", diff)
	}
}
