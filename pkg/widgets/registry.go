package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput       = "input"
	WidgetPassword    = "password"
	WidgetSelect      = "select"
	WidgetMultiSelect = "multiselect"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects the input widget for a field based on an explicit hint or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. The field's own widget hint
// is honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// ResolveOr returns the resolved widget or fallback when nothing matches.
func (r *Registry) ResolveOr(field model.Field, fallback string) string {
	if widget, ok := r.Resolve(field); ok {
		return widget
	}
	return fallback
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetMultiSelect, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeArray && len(field.Options) > 0
	})

	r.Register(WidgetPassword, 80, func(field model.Field) bool {
		return field.Secret && field.Type != model.FieldTypeArray
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		return field.Type != model.FieldTypeArray && len(field.Options) > 0
	})
}
