package render

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrUnknownFormat is returned by Get for a name no renderer claims.
var ErrUnknownFormat = errors.New("render: unknown output format")

// Registry maps output format names to renderers.
type Registry struct {
	byName map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Default returns a registry holding the json, yaml and pretty renderers.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(JSON{})
	r.MustRegister(YAML{})
	r.MustRegister(Pretty{})
	return r
}

// Register adds renderer under its Name. A format can be claimed once.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is nil")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer has no name")
	}
	if _, taken := r.byName[name]; taken {
		return errors.Newf("render: format %q already registered", name)
	}
	r.byName[name] = renderer
	return nil
}

// MustRegister is Register that panics.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer for format.
func (r *Registry) Get(format string) (Renderer, error) {
	renderer, ok := r.byName[format]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return renderer, nil
}

// List returns the registered format names sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
