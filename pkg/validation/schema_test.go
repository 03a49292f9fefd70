package validation_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func TestRegistration_EmptyRecord(t *testing.T) {
	s := testsupport.RegistrationSchema(t)
	got := s.Validate(s.Defaults())

	golden := filepath.Join("testdata", "registration_empty_errors.json")
	testsupport.WriteGolden(t, golden, got)
	testsupport.AssertErrors(t, testsupport.MustLoadErrorMap(t, golden), got)
}

func TestRegistration_ValidRecord(t *testing.T) {
	s := testsupport.RegistrationSchema(t)
	testsupport.AssertErrors(t, nil, s.Validate(testsupport.ValidRegistration()))
}

func TestRegistration_FieldRules(t *testing.T) {
	s := testsupport.RegistrationSchema(t)

	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{"first name blank", "firstName", "   ", "First Name is required"},
		{"email format", "email", "not-an-email", "Invalid email format"},
		{"email ok", "email", "someone@example.org", ""},
		{"phone short", "phoneNumber", "12345", "phone number must be 10 digits"},
		{"phone letters", "phoneNumber", "55512345ab", "phone number must be 10 digits"},
		{"password strong", "password", testsupport.ValidPassword, ""},
		{"password short", "password", "abc", "password must be atleast 8 characters"},
		{"password no symbol", "password", "abcdefgh", "password must contain atleast one symbol"},
		{"password no number", "password", "abcdefg!", "password must contain at least one number"},
		{"password no lower", "password", "ABCDEFG1!", "password must contain at least one lowercase letter"},
		{"password no upper", "password", "abcdefg1!", "password must contain at least one uppercase letter"},
		{"age below minimum", "age", "17", "you must be atleast 18 years old"},
		{"age not a number", "age", "abc", "age must be a number"},
		{"age ok", "age", "25", ""},
		{"age lower edge", "age", "18", ""},
		{"age upper edge", "age", "100", ""},
		{"age above maximum", "age", "101", "you cannot be older than 100 years"},
		{"age decoded number", "age", float64(42), ""},
		{"age empty", "age", "", "age is required"},
		{"gender unknown", "gender", "robot", "gender must be one of male, female, other"},
		{"gender ok", "gender", "other", ""},
		{"interests empty", "interests", []string{}, "select at least one interests"},
		{"interests nil", "interests", nil, "select at least one interests"},
		{"interests one", "interests", []string{"coding"}, ""},
		{"interests decoded", "interests", []any{"sports"}, ""},
		{"interests wrong type", "interests", "coding", "Interests must be a list of values"},
		{"birth date invalid", "birthDate", "12/10/1990", "birth date must be a valid date"},
		{"birth date ok", "birthDate", "1990-12-10", ""},
		{"birth date time value", "birthDate", time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC), ""},
		{"birth date empty", "birthDate", "", "birth date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := testsupport.ValidRegistration()
			record[tt.field] = tt.value
			if tt.field == "password" {
				record["confirmPassword"] = tt.value
			}

			msg, ok := s.ValidateField(tt.field, record)
			if tt.want == "" {
				if !ok {
					t.Fatalf("expected %s to be valid, got %q", tt.field, msg)
				}
				return
			}
			if ok {
				t.Fatalf("expected %s to be invalid", tt.field)
			}
			if msg != tt.want {
				t.Fatalf("message = %q, want %q", msg, tt.want)
			}
		})
	}
}

func TestRegistration_ConfirmPasswordFollowsPassword(t *testing.T) {
	s := testsupport.RegistrationSchema(t)

	record := testsupport.ValidRegistration()
	record["password"] = "abc"
	record["confirmPassword"] = "abc"
	if msg, ok := s.ValidateField("confirmPassword", record); !ok {
		t.Fatalf("expected confirmPassword to match, got %q", msg)
	}

	record["password"] = "abcd"
	msg, ok := s.ValidateField("confirmPassword", record)
	if ok {
		t.Fatalf("expected confirmPassword to be invalid after password changed")
	}
	if msg != "passwords must match" {
		t.Fatalf("message = %q", msg)
	}
}

func TestSchema_Dependents(t *testing.T) {
	s := testsupport.RegistrationSchema(t)
	if diff := cmp.Diff([]string{"confirmPassword"}, s.Dependents("password")); diff != "" {
		t.Fatalf("dependents mismatch (-want +got):\n%s", diff)
	}
	if deps := s.Dependents("email"); len(deps) != 0 {
		t.Fatalf("expected no dependents for email, got %v", deps)
	}

	chain := validation.MustCompile(model.FormModel{
		ID: "chain",
		Fields: []model.Field{
			{Name: "c", Validations: []model.ValidationRule{oneOfRef("b")}},
			{Name: "a"},
			{Name: "b", Validations: []model.ValidationRule{oneOfRef("a")}},
		},
	})
	if diff := cmp.Diff([]string{"c", "b"}, chain.Dependents("a")); diff != "" {
		t.Fatalf("transitive dependents mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_FirstFailingRuleWins(t *testing.T) {
	s := validation.MustCompile(model.FormModel{
		ID: "codes",
		Fields: []model.Field{{
			Name: "code",
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "4"}, Message: "too short"},
				{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "^[0-9]+$"}, Message: "digits only"},
			},
		}},
	})

	got := s.Validate(model.Record{"code": "ab"})
	testsupport.AssertErrors(t, validation.ErrorMap{"code": "too short"}, got)

	got = s.Validate(model.Record{"code": "abcd"})
	testsupport.AssertErrors(t, validation.ErrorMap{"code": "digits only"}, got)
}

func TestSchema_OptionalEmptyFieldSkipsRules(t *testing.T) {
	s := validation.MustCompile(model.FormModel{
		ID: "profile",
		Fields: []model.Field{{
			Name:  "nickname",
			Label: "Nickname",
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
			},
		}},
	})
	testsupport.AssertErrors(t, nil, s.Validate(model.Record{"nickname": ""}))
	testsupport.AssertErrors(t, validation.ErrorMap{"nickname": "Nickname must be at least 3 characters"}, s.Validate(model.Record{"nickname": "ab"}))
}

func TestRegistration_WhitespaceIsEmpty(t *testing.T) {
	s := testsupport.RegistrationSchema(t)
	for _, raw := range []string{"   ", "\t", " \n "} {
		record := testsupport.ValidRegistration()
		record["firstName"] = raw
		testsupport.AssertErrors(t, validation.ErrorMap{"firstName": "First Name is required"}, s.Validate(record))
		if !validation.Empty(raw) {
			t.Fatalf("Empty(%q) = false, want true", raw)
		}
	}

	record := testsupport.ValidRegistration()
	record["firstName"] = "  Ada  "
	testsupport.AssertErrors(t, nil, s.Validate(record))
	if validation.Empty([]string{"coding"}) || !validation.Empty([]any{}) || !validation.Empty(nil) {
		t.Fatalf("Empty misreports list or nil values")
	}
}

func TestSchema_DefaultMessages(t *testing.T) {
	s := validation.MustCompile(model.FormModel{
		ID: "defaults",
		Fields: []model.Field{
			{Name: "name", Label: "Name", Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}}},
			{Name: "score", Label: "Score", Type: model.FieldTypeNumber, Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "10"}},
			}},
			{Name: "tags", Label: "Tags", Type: model.FieldTypeArray, Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMaxItems, Params: map[string]string{"value": "1"}},
			}},
		},
	})

	got := s.Validate(model.Record{"name": "", "score": "x", "tags": []string{"a", "b"}})
	want := validation.ErrorMap{
		"name":  "Name is required",
		"score": "Score must be a number",
		"tags":  "Tags must have at most 1 items",
	}
	testsupport.AssertErrors(t, want, got)
}

func TestSchema_Check(t *testing.T) {
	s := testsupport.RegistrationSchema(t)
	record := testsupport.ValidRegistration()
	record["age"] = "abc"
	record["firstName"] = ""

	result := s.Check(record)
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	want := []validation.Issue{
		{Field: "firstName", Label: "First Name", Message: "First Name is required"},
		{Field: "age", Label: "Age", Message: "age must be a number"},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_Defaults(t *testing.T) {
	s := testsupport.RegistrationSchema(t)
	defaults := s.Defaults()
	if len(defaults) != len(s.Fields()) {
		t.Fatalf("defaults has %d keys, want %d", len(defaults), len(s.Fields()))
	}
	if got, ok := defaults["interests"].([]string); !ok || len(got) != 0 {
		t.Fatalf("interests default = %#v, want empty []string", defaults["interests"])
	}
	if defaults["email"] != "" {
		t.Fatalf("email default = %#v, want empty string", defaults["email"])
	}
}

func TestCompile_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		form model.FormModel
	}{
		{"no fields", model.FormModel{ID: "empty"}},
		{"blank name", model.FormModel{ID: "x", Fields: []model.Field{{Name: " "}}}},
		{"duplicate name", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a"}, {Name: "a"}}}},
		{"unknown type", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Type: "blob"}}}},
		{"unknown rule", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{{Kind: "luhn"}}}}}},
		{"bad pattern", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{
			{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "[a-"}},
		}}}}},
		{"missing pattern", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{
			{Kind: model.ValidationRulePattern},
		}}}}},
		{"non numeric bound", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Type: model.FieldTypeNumber, Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "ten"}},
		}}}}},
		{"negative length", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "-1"}},
		}}}}},
		{"inapplicable rule", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMinItems, Params: map[string]string{"value": "1"}},
		}}}}},
		{"oneOf without params", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleOneOf},
		}}}}},
		{"oneOf self reference", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{oneOfRef("a")}}}}},
		{"undeclared reference", model.FormModel{ID: "x", Fields: []model.Field{{Name: "a", Validations: []model.ValidationRule{oneOfRef("missing")}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validation.Compile(tt.form)
			if err == nil {
				t.Fatalf("expected compile error")
			}
			if !errors.Is(err, validation.ErrInvalidDefinition) {
				t.Fatalf("expected ErrInvalidDefinition, got %v", err)
			}
		})
	}
}

func TestCompile_DefinitionErrorLocatesRule(t *testing.T) {
	_, err := validation.Compile(model.FormModel{ID: "x", Fields: []model.Field{{Name: "zip", Validations: []model.ValidationRule{
		{Kind: model.ValidationRuleRequired},
		{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "(["}},
	}}}})

	var defErr *validation.DefinitionError
	if !errors.As(err, &defErr) {
		t.Fatalf("expected DefinitionError, got %T %v", err, err)
	}
	if defErr.Field != "zip" || defErr.Index != 1 || defErr.Kind != model.ValidationRulePattern {
		t.Fatalf("unexpected location: %+v", defErr)
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	validation.MustCompile(model.FormModel{ID: "broken"})
}

func oneOfRef(field string) model.ValidationRule {
	return model.ValidationRule{Kind: model.ValidationRuleOneOf, Params: map[string]string{"ref": field}}
}
