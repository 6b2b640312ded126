// Package navigation implements named navigation hosts (regions) and the
// view/viewmodel navigation protocol that swaps content between them.
package navigation

import tea "github.com/charmbracelet/bubbletea"

// View is a piece of displayable content a host can present. Views follow
// the Bubble Tea model contract but update in place: hosts hold views by
// reference so a viewmodel bound during navigation stays visible to the
// update loop. Concrete views are pointer types.
type View interface {
	// Init returns the view's initial command.
	Init() tea.Cmd

	// Update handles a message and returns follow-up commands.
	Update(msg tea.Msg) tea.Cmd

	// View renders the content.
	View() string
}

// Sizer is implemented by views that want terminal size updates.
type Sizer interface {
	SetSize(width, height int)
}

// ViewModelHolder is implemented by views that expose a slot for a bound
// viewmodel. The manager fills the slot when navigation commits.
type ViewModelHolder interface {
	SetViewModel(vm any)
	ViewModel() any
}

// ViewModelSlot is an embeddable ViewModelHolder implementation.
type ViewModelSlot struct {
	vm any
}

// SetViewModel stores the bound viewmodel.
func (s *ViewModelSlot) SetViewModel(vm any) { s.vm = vm }

// ViewModel returns the bound viewmodel, or nil.
func (s *ViewModelSlot) ViewModel() any { return s.vm }
