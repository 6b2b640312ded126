// Package contenthost provides a Bubble Tea region control implementing
// navigation.Host. It displays one view at a time, falls back to a default
// content placeholder before the first navigation, and publishes a
// ContentChange event after every swap.
package contenthost

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/waypoint/navigation"
	"github.com/zjrosen/waypoint/pubsub"
)

var placeholderStyle = lipgloss.NewStyle().
	Faint(true).
	Align(lipgloss.Center, lipgloss.Center)

// Model is a single navigation region. Hosts are held by pointer: the
// manager swaps content through Display while the Bubble Tea loop keeps
// rendering the same host.
type Model struct {
	current  navigation.View
	fallback navigation.View
	ambient  any

	navigated *pubsub.Broker[navigation.ContentChange]

	width  int
	height int
}

// Option configures a host.
type Option func(*Model)

// WithDefaultContent sets the fallback shown before the first navigation.
func WithDefaultContent(v navigation.View) Option {
	return func(m *Model) { m.fallback = v }
}

// WithAmbientViewModel sets a viewmodel shared with views that have none
// of their own. Views carrying exactly this value are treated as having
// no view-local viewmodel during navigation.
func WithAmbientViewModel(vm any) Option {
	return func(m *Model) { m.ambient = vm }
}

// New creates a host region.
func New(opts ...Option) *Model {
	m := &Model{
		navigated: pubsub.NewBroker[navigation.ContentChange](),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init returns the active view's initial command.
func (m *Model) Init() tea.Cmd {
	if v := m.active(); v != nil {
		return v.Init()
	}
	return nil
}

// Update delegates the message to the active view.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if v := m.active(); v != nil {
		return v.Update(msg)
	}
	return nil
}

// View renders the active view, or a placeholder frame when the host has
// neither current nor default content.
func (m *Model) View() string {
	if v := m.active(); v != nil {
		return v.View()
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return placeholderStyle.Width(m.width).Height(m.height).Render("∅")
}

// SetSize stores the region size and propagates it to the active view.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if s, ok := m.active().(navigation.Sizer); ok {
		s.SetSize(width, height)
	}
}

// CurrentContent returns the navigated content; nil before the first
// navigation even when default content is showing.
func (m *Model) CurrentContent() navigation.View {
	return m.current
}

// DefaultContent returns the configured fallback, or nil.
func (m *Model) DefaultContent() navigation.View {
	return m.fallback
}

// Display swaps the current content for v and publishes a ContentChange
// carrying the new and previous views. Replace, never stack.
func (m *Model) Display(v navigation.View) {
	previous := m.current
	m.current = v
	if s, ok := v.(navigation.Sizer); ok && m.width > 0 {
		s.SetSize(m.width, m.height)
	}
	m.navigated.Publish(pubsub.NavigatedEvent, navigation.ContentChange{
		Content:  v,
		Previous: previous,
	})
}

// Navigated returns the broker publishing ContentChange events.
func (m *Model) Navigated() *pubsub.Broker[navigation.ContentChange] {
	return m.navigated
}

// AmbientViewModel returns the shared viewmodel, or nil.
func (m *Model) AmbientViewModel() any {
	return m.ambient
}

// SetAmbientViewModel replaces the shared viewmodel.
func (m *Model) SetAmbientViewModel(vm any) {
	m.ambient = vm
}

// Close shuts down the navigated broker.
func (m *Model) Close() {
	m.navigated.Close()
}

// active is the view rendered right now: current content, else fallback.
func (m *Model) active() navigation.View {
	if m.current != nil {
		return m.current
	}
	return m.fallback
}
