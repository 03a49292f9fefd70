package widgets

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type:    model.FieldTypeString,
		Options: []string{"a", "b"},
		Widget:  WidgetInput,
	}

	if got, ok := reg.Resolve(field); !ok || got != WidgetInput {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{
			name:   "array with options",
			field:  model.Field{Type: model.FieldTypeArray, Options: []string{"coding"}},
			expect: WidgetMultiSelect,
		},
		{
			name:   "secret string",
			field:  model.Field{Type: model.FieldTypeString, Secret: true},
			expect: WidgetPassword,
		},
		{
			name:   "secret beats options",
			field:  model.Field{Type: model.FieldTypeString, Secret: true, Options: []string{"a"}},
			expect: WidgetPassword,
		},
		{
			name:   "string with options",
			field:  model.Field{Type: model.FieldTypeString, Options: []string{"male", "female"}},
			expect: WidgetSelect,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestResolve_NoMatch(t *testing.T) {
	reg := NewRegistry()
	if got, ok := reg.Resolve(model.Field{Type: model.FieldTypeNumber}); ok {
		t.Fatalf("expected no widget, got %q", got)
	}
	if got := reg.ResolveOr(model.Field{Type: model.FieldTypeDate}, WidgetInput); got != WidgetInput {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	always := func(model.Field) bool { return true }

	reg.Register("first", 10, always)
	reg.Register("second", 10, always)
	if got, _ := reg.Resolve(model.Field{}); got != "first" {
		t.Fatalf("ties should keep registration order, got %q", got)
	}

	reg.Register("urgent", 20, always)
	if got, _ := reg.Resolve(model.Field{}); got != "urgent" {
		t.Fatalf("higher priority should win, got %q", got)
	}

	reg.Register("  ", 99, always)
	reg.Register("nil", 99, nil)
	if got, _ := reg.Resolve(model.Field{}); got != "urgent" {
		t.Fatalf("invalid registrations must be ignored, got %q", got)
	}
}

func TestResolve_NilRegistry(t *testing.T) {
	var reg *Registry
	if _, ok := reg.Resolve(model.Field{}); ok {
		t.Fatalf("nil registry should not resolve")
	}
	if got, ok := reg.Resolve(model.Field{Widget: "custom"}); !ok || got != "custom" {
		t.Fatalf("explicit widget should resolve on nil registry, got %q", got)
	}
}
