package navigation

import (
	"errors"
	"sync"

	"github.com/zjrosen/waypoint/log"
)

// Locator tracks the process-wide current manager and queues host
// registrations made before any manager exists. Declarative wiring sets a
// host name and a manager in whichever order the UI layer produces them;
// the locator tolerates both. It is an explicit object rather than package
// state so test harnesses can Reset it.
type Locator struct {
	mu      sync.Mutex
	current *Manager
	pending []pendingHost
}

type pendingHost struct {
	name string
	host Host
}

// NewLocator creates an empty locator.
func NewLocator() *Locator {
	return &Locator{}
}

// defaultLocator backs the package-level convenience functions.
var defaultLocator = NewLocator()

// DefaultLocator returns the shared process-wide locator.
func DefaultLocator() *Locator { return defaultLocator }

// SetCurrent installs m as the current manager and flushes the pending
// registration queue against it, in order. Entries that fail to register
// are dropped; their errors are joined into the return value. A nil m
// clears the current manager.
func (l *Locator) SetCurrent(m *Manager) error {
	l.mu.Lock()
	l.current = m
	if m == nil {
		// Queued registrations wait for the next manager.
		l.mu.Unlock()
		return nil
	}
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()

	var errs []error
	for _, p := range pending {
		if err := m.RegisterHost(p.name, p.host); err != nil {
			log.Warn(log.CatHost, "Pending host registration failed", "host", p.name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Current returns the current manager, or nil.
func (l *Locator) Current() *Manager {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// RegisterHost registers with the current manager, or queues the
// registration until one becomes current. Queued registrations report
// their errors through SetCurrent.
func (l *Locator) RegisterHost(name string, h Host) error {
	l.mu.Lock()
	m := l.current
	if m == nil {
		l.pending = append(l.pending, pendingHost{name: name, host: h})
		l.mu.Unlock()
		log.Debug(log.CatHost, "Host registration queued, no current manager", "host", name)
		return nil
	}
	l.mu.Unlock()
	return m.RegisterHost(name, h)
}

// UnregisterHost unregisters from the current manager, or drops a matching
// queued registration.
func (l *Locator) UnregisterHost(name string) bool {
	l.mu.Lock()
	if l.current == nil {
		for i, p := range l.pending {
			if p.name == name {
				l.pending = append(l.pending[:i], l.pending[i+1:]...)
				l.mu.Unlock()
				return true
			}
		}
		l.mu.Unlock()
		return false
	}
	m := l.current
	l.mu.Unlock()
	return m.UnregisterHost(name)
}

// PendingCount returns the number of queued registrations.
func (l *Locator) PendingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Reset clears the current manager and the pending queue. Intended for
// test isolation.
func (l *Locator) Reset() {
	l.mu.Lock()
	l.current = nil
	l.pending = nil
	l.mu.Unlock()
}
