// Package factory constructs view and viewmodel instances. A configured
// container is preferred so constructor-injected dependencies work; types
// without a registration fall back to their manifest constructor, then to
// zero-value construction.
package factory

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/zjrosen/waypoint/log"
	"github.com/zjrosen/waypoint/resolver"
)

// ErrNotConstructible reports a type that no strategy could construct.
var ErrNotConstructible = errors.New("type cannot be constructed")

// Container resolves instances from a dependency-injection container.
// Absence of a registration is not an error; it triggers fallback
// construction.
type Container interface {
	TryResolve(t reflect.Type) (any, bool)
}

// Factory produces view and viewmodel instances. Every call returns a
// fresh instance; nothing is cached, matching transient view/viewmodel
// semantics.
type Factory struct {
	container Container
	manifest  *resolver.Manifest
}

// Option configures a Factory.
type Option func(*Factory)

// WithContainer sets the dependency-injection container consulted first.
func WithContainer(c Container) Option {
	return func(f *Factory) { f.container = c }
}

// New creates a factory over the given manifest.
func New(manifest *resolver.Manifest, opts ...Option) *Factory {
	f := &Factory{manifest: manifest}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create constructs an instance of t. Strategy order: container, manifest
// constructor, zero-value struct construction. The returned instance is a
// pointer for struct types.
func (f *Factory) Create(t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("type cannot be nil: %w", ErrNotConstructible)
	}
	vt := resolver.NormalizeType(t)

	if f.container != nil {
		if inst, ok := f.container.TryResolve(vt); ok {
			log.Debug(log.CatFactory, "Resolved from container", "type", resolver.TypeName(vt))
			return inst, nil
		}
	}

	if f.manifest != nil {
		if entry := f.manifest.Lookup(vt); entry != nil && entry.New != nil {
			return entry.New(), nil
		}
	}

	if vt.Kind() == reflect.Struct {
		return reflect.New(vt).Interface(), nil
	}

	return nil, fmt.Errorf("cannot construct %s: no container registration, manifest constructor, or struct type: %w",
		resolver.TypeName(vt), ErrNotConstructible)
}

// CreateView constructs a view instance of t.
func (f *Factory) CreateView(t reflect.Type) (any, error) {
	return f.Create(t)
}

// CreateViewModel constructs a viewmodel instance of t.
func (f *Factory) CreateViewModel(t reflect.Type) (any, error) {
	return f.Create(t)
}
