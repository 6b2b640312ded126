// Package resolver maps view types to viewmodel types. An explicit mapping
// table always wins; otherwise a naming convention is applied over a closed
// type manifest registered at startup.
package resolver

import (
	"fmt"
	"reflect"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/waypoint/log"
)

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	// ViewModel is the resolved viewmodel type.
	ViewModel reflect.Type

	// Explicit is true when the result came from the explicit mapping
	// table rather than the naming convention.
	Explicit bool
}

// Resolver resolves a viewmodel type for a view type. Safe for concurrent
// use. Convention results are cached; resolution is pure with respect to a
// fixed manifest, so the cache never expires.
type Resolver struct {
	manifest *Manifest

	mu       sync.RWMutex
	mappings map[reflect.Type]reflect.Type

	cache *gocache.Cache

	viewSuffix  string
	vmSuffix    string
	crossModule bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSuffixes overrides the view/viewmodel naming suffixes.
func WithSuffixes(view, viewModel string) Option {
	return func(r *Resolver) {
		r.viewSuffix = view
		r.vmSuffix = viewModel
	}
}

// WithoutCrossModuleScan restricts the final by-name scan to the view's
// own module.
func WithoutCrossModuleScan() Option {
	return func(r *Resolver) { r.crossModule = false }
}

// New creates a resolver over the given manifest.
func New(manifest *Manifest, opts ...Option) *Resolver {
	r := &Resolver{
		manifest:    manifest,
		mappings:    make(map[reflect.Type]reflect.Type),
		cache:       gocache.New(gocache.NoExpiration, 0),
		viewSuffix:  DefaultViewSuffix,
		vmSuffix:    DefaultViewModelSuffix,
		crossModule: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddMapping registers an explicit view -> viewmodel mapping. A mapping for
// the same view type replaces the previous one.
func (r *Resolver) AddMapping(viewType, viewModelType reflect.Type) error {
	if viewType == nil {
		return fmt.Errorf("view type cannot be nil")
	}
	if viewModelType == nil {
		return fmt.Errorf("viewmodel type for %s cannot be nil", TypeName(viewType))
	}

	r.mu.Lock()
	r.mappings[NormalizeType(viewType)] = NormalizeType(viewModelType)
	r.mu.Unlock()

	log.Debug(log.CatResolve, "Mapping added", "view", TypeName(viewType), "viewModel", TypeName(viewModelType))
	return nil
}

// Map registers an explicit mapping from view type V to viewmodel type VM.
func Map[V, VM any](r *Resolver) error {
	return r.AddMapping(reflect.TypeFor[V](), reflect.TypeFor[VM]())
}

// RemoveMapping deletes the explicit mapping for viewType. Returns whether
// a mapping existed.
func (r *Resolver) RemoveMapping(viewType reflect.Type) bool {
	if viewType == nil {
		return false
	}
	vt := NormalizeType(viewType)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.mappings[vt]; !ok {
		return false
	}
	delete(r.mappings, vt)
	return true
}

// ClearMappings removes all explicit mappings.
func (r *Resolver) ClearMappings() {
	r.mu.Lock()
	r.mappings = make(map[reflect.Type]reflect.Type)
	r.mu.Unlock()
}

// Resolve returns the viewmodel resolution for viewType, or nil when no
// viewmodel can be found. Not finding one is not an error; a nil viewType
// is.
func (r *Resolver) Resolve(viewType reflect.Type) (*Resolution, error) {
	if viewType == nil {
		return nil, fmt.Errorf("view type cannot be nil")
	}
	vt := NormalizeType(viewType)

	// Explicit mappings take precedence, no further search.
	r.mu.RLock()
	mapped, ok := r.mappings[vt]
	r.mu.RUnlock()
	if ok {
		return &Resolution{ViewModel: mapped, Explicit: true}, nil
	}

	key := TypeName(vt)
	if cached, found := r.cache.Get(key); found {
		if t, ok := cached.(reflect.Type); ok && t != nil {
			return &Resolution{ViewModel: t}, nil
		}
		return nil, nil // cached miss
	}

	entry := r.convention(vt)
	if entry == nil {
		r.cache.Set(key, reflect.Type(nil), gocache.NoExpiration)
		log.Debug(log.CatResolve, "No viewmodel found", "view", key)
		return nil, nil
	}

	r.cache.Set(key, entry.Type, gocache.NoExpiration)
	log.Debug(log.CatResolve, "Resolved by convention", "view", key, "viewModel", TypeName(entry.Type))
	return &Resolution{ViewModel: entry.Type}, nil
}

// CanResolve reports whether Resolve would return a viewmodel type.
func (r *Resolver) CanResolve(viewType reflect.Type) bool {
	res, err := r.Resolve(viewType)
	return err == nil && res != nil
}

// InvalidateCache clears cached convention results. Call it if the manifest
// is extended after resolutions have happened.
func (r *Resolver) InvalidateCache() {
	r.cache.Flush()
}

// convention walks the candidate list for vt. The view's manifest entry
// supplies the package and module; an unregistered view type still resolves
// through its reflected package path, minus the module-scoped scan.
func (r *Resolver) convention(vt reflect.Type) *Entry {
	name := vt.Name()
	pkg := vt.PkgPath()
	module := ""
	if entry := r.manifest.Lookup(vt); entry != nil {
		name = entry.Name
		pkg = entry.Package
		module = entry.Module
	}

	want := candidateName(name, r.viewSuffix, r.vmSuffix)

	for _, candidate := range candidatePackages(pkg) {
		if e := r.manifest.ViewModel(candidate, want); e != nil {
			return e
		}
	}
	if e := r.manifest.ViewModelByName(want, module); e != nil {
		return e
	}
	if r.crossModule {
		if e := r.manifest.ViewModelByNameAny(want); e != nil {
			return e
		}
	}
	return nil
}
