package navigation

import "context"

// Lifecycle is the synchronous navigation lifecycle contract a viewmodel
// may implement. A viewmodel implementing neither Lifecycle nor
// ContextLifecycle participates in navigation unconditionally: both guards
// trivially pass and no notifications fire.
type Lifecycle interface {
	// CanNavigateTo is the incoming guard. Returning false cancels the
	// navigation before any content changes.
	CanNavigateTo(param any) bool

	// OnNavigatedTo runs after both guards pass, with the caller's
	// parameter forwarded unchanged.
	OnNavigatedTo(param any)

	// CanNavigateFrom is the outgoing guard - the "unsaved changes" hook.
	// Returning false aborts the whole navigation.
	CanNavigateFrom() bool

	// OnNavigatedFrom runs when the view is being navigated away from.
	OnNavigatedFrom()
}

// ContextLifecycle is the asynchronous counterpart of Lifecycle. The
// context entry points (NavigateContext and friends) drive these methods
// when present and fall back to Lifecycle otherwise; one navigation never
// mixes the two contracts on the same viewmodel.
type ContextLifecycle interface {
	CanNavigateToContext(ctx context.Context, param any) (bool, error)
	OnNavigatedToContext(ctx context.Context, param any) error
	CanNavigateFromContext(ctx context.Context) (bool, error)
	OnNavigatedFromContext(ctx context.Context) error
}

// Capability reports which lifecycle contracts a viewmodel implements.
// Detected once per navigation instead of repeated type assertions.
type Capability uint8

const (
	// CapabilityNone marks a viewmodel with no lifecycle participation.
	CapabilityNone Capability = 0

	// CapabilitySync marks a viewmodel implementing Lifecycle.
	CapabilitySync Capability = 1 << 0

	// CapabilityAsync marks a viewmodel implementing ContextLifecycle.
	CapabilityAsync Capability = 1 << 1
)

// DetectCapability inspects vm once and returns its capability set.
func DetectCapability(vm any) Capability {
	if vm == nil {
		return CapabilityNone
	}
	c := CapabilityNone
	if _, ok := vm.(Lifecycle); ok {
		c |= CapabilitySync
	}
	if _, ok := vm.(ContextLifecycle); ok {
		c |= CapabilityAsync
	}
	return c
}

// Sync reports whether the synchronous contract is present.
func (c Capability) Sync() bool { return c&CapabilitySync != 0 }

// Async reports whether the asynchronous contract is present.
func (c Capability) Async() bool { return c&CapabilityAsync != 0 }

func (c Capability) String() string {
	switch {
	case c.Sync() && c.Async():
		return "sync+async"
	case c.Sync():
		return "sync"
	case c.Async():
		return "async"
	default:
		return "none"
	}
}

// participant pairs a viewmodel with its detected capability for one
// navigation.
type participant struct {
	vm  any
	cap Capability
}

func newParticipant(vm any) participant {
	return participant{vm: vm, cap: DetectCapability(vm)}
}

// canNavigateFrom runs the outgoing guard for the entry point in use.
// The async entry uses only the async contract when present; the sync
// entry uses only the sync contract.
func (p participant) canNavigateFrom(ctx context.Context, async bool) (bool, error) {
	switch {
	case p.vm == nil:
		return true, nil
	case async && p.cap.Async():
		return p.vm.(ContextLifecycle).CanNavigateFromContext(ctx)
	case p.cap.Sync():
		// Sync entry, or the async entry falling back to the sync
		// contract when no async contract exists.
		return p.vm.(Lifecycle).CanNavigateFrom(), nil
	}
	return true, nil
}

func (p participant) canNavigateTo(ctx context.Context, async bool, param any) (bool, error) {
	switch {
	case p.vm == nil:
		return true, nil
	case async && p.cap.Async():
		return p.vm.(ContextLifecycle).CanNavigateToContext(ctx, param)
	case p.cap.Sync():
		return p.vm.(Lifecycle).CanNavigateTo(param), nil
	}
	return true, nil
}

func (p participant) onNavigatedFrom(ctx context.Context, async bool) error {
	switch {
	case p.vm == nil:
		return nil
	case async && p.cap.Async():
		return p.vm.(ContextLifecycle).OnNavigatedFromContext(ctx)
	case p.cap.Sync():
		p.vm.(Lifecycle).OnNavigatedFrom()
	}
	return nil
}

func (p participant) onNavigatedTo(ctx context.Context, async bool, param any) error {
	switch {
	case p.vm == nil:
		return nil
	case async && p.cap.Async():
		return p.vm.(ContextLifecycle).OnNavigatedToContext(ctx, param)
	case p.cap.Sync():
		p.vm.(Lifecycle).OnNavigatedTo(param)
	}
	return nil
}
