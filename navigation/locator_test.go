package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// === Unit Tests: Manager First ===

func TestLocator_RegisterAfterManager(t *testing.T) {
	l := NewLocator()
	m, _ := newTestManager(t)

	require.NoError(t, l.SetCurrent(m))
	require.Same(t, m, l.Current())

	require.NoError(t, l.RegisterHost("sidebar", &fakeHost{}))
	require.True(t, m.HostExists("sidebar"))
	require.Zero(t, l.PendingCount())
}

// === Unit Tests: Host First ===

func TestLocator_RegisterBeforeManagerQueues(t *testing.T) {
	l := NewLocator()

	require.NoError(t, l.RegisterHost("sidebar", &fakeHost{}))
	require.Equal(t, 1, l.PendingCount())

	m, _ := newTestManager(t)
	require.NoError(t, l.SetCurrent(m))

	require.True(t, m.HostExists("sidebar"))
	require.Zero(t, l.PendingCount())
}

func TestLocator_PendingFlushPreservesOrder(t *testing.T) {
	l := NewLocator()

	require.NoError(t, l.RegisterHost("first", &fakeHost{}))
	require.NoError(t, l.RegisterHost("second", &fakeHost{}))
	require.NoError(t, l.RegisterHost("third", &fakeHost{}))

	m, _ := newTestManager(t)
	require.NoError(t, l.SetCurrent(m))

	require.Equal(t, []string{"first", "main", "second", "third"}, m.HostNames())
}

func TestLocator_FlushReportsFailedRegistrations(t *testing.T) {
	l := NewLocator()

	// "main" collides with the host newTestManager registers
	require.NoError(t, l.RegisterHost("main", &fakeHost{}))
	require.NoError(t, l.RegisterHost("sidebar", &fakeHost{}))

	m, _ := newTestManager(t)
	err := l.SetCurrent(m)
	require.ErrorIs(t, err, ErrHostConflict)

	// Failed entries are dropped, successful ones registered
	require.True(t, m.HostExists("sidebar"))
	require.Zero(t, l.PendingCount())
}

// === Unit Tests: Unregister ===

func TestLocator_UnregisterDropsQueuedEntry(t *testing.T) {
	l := NewLocator()

	require.NoError(t, l.RegisterHost("sidebar", &fakeHost{}))
	require.True(t, l.UnregisterHost("sidebar"))
	require.Zero(t, l.PendingCount())
	require.False(t, l.UnregisterHost("sidebar"))
}

func TestLocator_UnregisterDelegatesToManager(t *testing.T) {
	l := NewLocator()
	m, _ := newTestManager(t)
	require.NoError(t, l.SetCurrent(m))

	require.True(t, l.UnregisterHost("main"))
	require.False(t, m.HostExists("main"))
}

// === Unit Tests: Reset and Clearing ===

func TestLocator_SetCurrentNilKeepsQueue(t *testing.T) {
	l := NewLocator()
	m, _ := newTestManager(t)
	require.NoError(t, l.SetCurrent(m))

	require.NoError(t, l.SetCurrent(nil))
	require.Nil(t, l.Current())

	// Registrations queue again for the next manager
	require.NoError(t, l.RegisterHost("sidebar", &fakeHost{}))
	require.Equal(t, 1, l.PendingCount())
}

func TestLocator_Reset(t *testing.T) {
	l := NewLocator()
	m, _ := newTestManager(t)
	require.NoError(t, l.SetCurrent(m))
	require.NoError(t, l.SetCurrent(nil))
	require.NoError(t, l.RegisterHost("sidebar", &fakeHost{}))

	l.Reset()
	require.Nil(t, l.Current())
	require.Zero(t, l.PendingCount())
}

func TestDefaultLocator_IsShared(t *testing.T) {
	defer DefaultLocator().Reset()

	m, _ := newTestManager(t)
	require.NoError(t, DefaultLocator().SetCurrent(m))
	require.Same(t, m, DefaultLocator().Current())
}
