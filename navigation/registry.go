package navigation

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// HostRegistry is the authoritative name -> host table. Names are
// case-sensitive and unique. Implementations must be safe for concurrent
// registration and lookup; hosts may register from background
// initialization while the UI thread navigates.
type HostRegistry interface {
	// Register adds a host under name. Fails for blank names, nil hosts,
	// and names that are already taken.
	Register(name string, h Host) error

	// Unregister removes the entry for name. Returns false, without
	// error, for blank or unknown names.
	Unregister(name string) bool

	// Get returns the host registered under name, or nil for blank or
	// unknown names.
	Get(name string) Host

	// Names returns a snapshot of all registered names, sorted.
	Names() []string

	// Exists reports whether a host is registered under name.
	Exists(name string) bool
}

// hostRegistry is a thread-safe in-memory implementation of HostRegistry.
type hostRegistry struct {
	mu    sync.RWMutex
	hosts map[string]Host
}

// NewHostRegistry creates an empty in-memory HostRegistry.
func NewHostRegistry() HostRegistry {
	return &hostRegistry{hosts: make(map[string]Host)}
}

func (r *hostRegistry) Register(name string, h Host) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("host name cannot be blank: %w", ErrInvalidArgument)
	}
	if h == nil {
		return fmt.Errorf("host %q cannot be nil: %w", name, ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hosts[name]; exists {
		return fmt.Errorf("host %q: %w", name, ErrHostConflict)
	}

	r.hosts[name] = h
	return nil
}

func (r *hostRegistry) Unregister(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hosts[name]; !ok {
		return false
	}
	delete(r.hosts, name)
	return true
}

func (r *hostRegistry) Get(name string) Host {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hosts[name]
}

func (r *hostRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.hosts))
}

func (r *hostRegistry) Exists(name string) bool {
	return r.Get(name) != nil
}
