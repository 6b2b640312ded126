package resolver

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Entry describes one view or viewmodel type registered in a Manifest.
type Entry struct {
	// Type is the concrete struct type. Pointer types are normalized to
	// their element type at registration.
	Type reflect.Type

	// Name is the simple type name, e.g. "HomeView". Derived from Type
	// when left blank.
	Name string

	// Package is the slash-separated package path, e.g. "app/views".
	// Derived from Type when left blank.
	Package string

	// Module names the unit the type ships in. Types in the same module
	// are searched before the rest during convention resolution.
	Module string

	// New constructs a fresh instance. Optional; the factory falls back
	// to zero-value construction for struct types without one.
	New func() any
}

// Manifest is the closed set of view and viewmodel types navigation can
// work with. Types are registered once at startup; there is no open-ended
// runtime scanning. Safe for concurrent use.
type Manifest struct {
	mu         sync.RWMutex
	views      []*Entry
	viewModels []*Entry
	byType     map[reflect.Type]*Entry
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{byType: make(map[reflect.Type]*Entry)}
}

// AddView registers a view type. Blank Name and Package are derived from
// the type. Registering the same type twice is an error.
func (m *Manifest) AddView(e Entry) error {
	return m.add(e, true)
}

// AddViewModel registers a viewmodel type.
func (m *Manifest) AddViewModel(e Entry) error {
	return m.add(e, false)
}

func (m *Manifest) add(e Entry, view bool) error {
	if e.Type == nil {
		return fmt.Errorf("manifest entry requires a type")
	}
	e.Type = NormalizeType(e.Type)
	if e.Name == "" {
		e.Name = e.Type.Name()
	}
	if e.Name == "" {
		return fmt.Errorf("cannot derive a name for unnamed type %s", e.Type)
	}
	if e.Package == "" {
		e.Package = e.Type.PkgPath()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byType[e.Type]; exists {
		return fmt.Errorf("type %s already registered", TypeName(e.Type))
	}

	entry := &e
	m.byType[e.Type] = entry
	if view {
		m.views = append(m.views, entry)
	} else {
		m.viewModels = append(m.viewModels, entry)
	}
	return nil
}

// AddViewOf registers T as a view under the given module.
func AddViewOf[T any](m *Manifest, module string, ctor func() any) error {
	return m.AddView(Entry{Type: reflect.TypeFor[T](), Module: module, New: ctor})
}

// AddViewModelOf registers T as a viewmodel under the given module.
func AddViewModelOf[T any](m *Manifest, module string, ctor func() any) error {
	return m.AddViewModel(Entry{Type: reflect.TypeFor[T](), Module: module, New: ctor})
}

// Lookup returns the entry registered for t (view or viewmodel), or nil.
func (m *Manifest) Lookup(t reflect.Type) *Entry {
	if t == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byType[NormalizeType(t)]
}

// ViewModel returns the viewmodel entry with the exact package and name,
// or nil.
func (m *Manifest) ViewModel(pkg, name string) *Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.viewModels {
		if e.Package == pkg && e.Name == name {
			return e
		}
	}
	return nil
}

// ViewModelByName returns the first viewmodel entry with the given simple
// name inside module, in registration order, ignoring package. A blank
// module matches nothing.
func (m *Manifest) ViewModelByName(name, module string) *Entry {
	if module == "" {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.viewModels {
		if e.Module == module && e.Name == name {
			return e
		}
	}
	return nil
}

// ViewModelByNameAny returns the first viewmodel entry with the given
// simple name across all modules, in registration order.
func (m *Manifest) ViewModelByNameAny(name string) *Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.viewModels {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Views returns a snapshot of the registered view entries.
func (m *Manifest) Views() []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Entry, len(m.views))
	copy(out, m.views)
	return out
}

// ViewModels returns a snapshot of the registered viewmodel entries.
func (m *Manifest) ViewModels() []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Entry, len(m.viewModels))
	copy(out, m.viewModels)
	return out
}

// NormalizeType maps pointer types to their element type so *HomeView and
// HomeView key the same entry.
func NormalizeType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// TypeName renders a type as package/path.Name for error messages.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	t = NormalizeType(t)
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// splitPackage is a tiny helper shared with convention candidate
// generation.
func splitPackage(pkg string) []string {
	if pkg == "" {
		return nil
	}
	return strings.Split(pkg, "/")
}
