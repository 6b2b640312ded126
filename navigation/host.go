package navigation

import "github.com/zjrosen/waypoint/pubsub"

// ContentChange describes a completed content swap on a host.
type ContentChange struct {
	// Content is the newly displayed view.
	Content View

	// Previous is the view that was displayed before, nil on the first
	// navigation.
	Previous View
}

// Host is a single region capable of displaying one view at a time.
// Display unconditionally replaces the current content - replace, never
// stack. Hosts are created and owned by the UI layer; a manager only owns
// the registration entry.
type Host interface {
	// CurrentContent returns the active view, or nil when nothing has
	// been navigated to yet.
	CurrentContent() View

	// Display swaps the current content for v. Implementations publish a
	// ContentChange on their Navigated broker after the swap.
	Display(v View)
}

// Notifier is implemented by hosts that publish ContentChange events.
type Notifier interface {
	Navigated() *pubsub.Broker[ContentChange]
}

// AmbientViewModel is implemented by hosts that share a viewmodel with
// views that have none of their own. The manager uses it to tell a
// view-local viewmodel apart from an inherited one: only view-local
// viewmodels take part in the navigation lifecycle.
type AmbientViewModel interface {
	AmbientViewModel() any
}
