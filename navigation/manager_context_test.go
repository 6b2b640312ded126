package navigation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// blockingViewModel stalls in OnNavigatedToContext until its context ends.
type blockingViewModel struct{}

func (vm *blockingViewModel) CanNavigateToContext(ctx context.Context, param any) (bool, error) {
	return true, nil
}

func (vm *blockingViewModel) OnNavigatedToContext(ctx context.Context, param any) error {
	<-ctx.Done()
	return ctx.Err()
}

func (vm *blockingViewModel) CanNavigateFromContext(ctx context.Context) (bool, error) {
	return true, nil
}

func (vm *blockingViewModel) OnNavigatedFromContext(ctx context.Context) error {
	return nil
}

// === Unit Tests: NavigateContext ===

func TestManager_NavigateContext_RunsAsyncLifecycle(t *testing.T) {
	m, host := newTestManager(t)

	committed, err := NavigateToContext[*StreamView](context.Background(), m, "main", "feed")
	require.NoError(t, err)
	require.True(t, committed)

	vm := boundVM[*StreamViewModel](t, host)
	require.Equal(t, []string{"CanNavigateToContext", "OnNavigatedToContext"}, vm.Calls)
	require.Equal(t, "feed", vm.LastParam)
}

func TestManager_NavigateContext_PrefersAsyncContract(t *testing.T) {
	m, _ := newTestManager(t)

	vm := &dualViewModel{}
	v := &StreamView{}
	v.SetViewModel(vm)

	committed, err := m.NavigateViewContext(context.Background(), "main", v)
	require.NoError(t, err)
	require.True(t, committed)

	require.Zero(t, vm.SyncCalls, "async entry must not touch the sync contract")
	require.Equal(t, 2, vm.AsyncCalls)
}

func TestManager_NavigateContext_FallsBackToSyncContract(t *testing.T) {
	m, host := newTestManager(t)

	committed, err := NavigateToContext[*WidgetView](context.Background(), m, "main", 7)
	require.NoError(t, err)
	require.True(t, committed)

	vm := boundVM[*WidgetViewModel](t, host)
	require.Equal(t, []string{"CanNavigateTo", "OnNavigatedTo"}, vm.Calls)
	require.Equal(t, 7, vm.LastParam)
}

func TestManager_NavigateContext_AsyncGuardCancels(t *testing.T) {
	m, host := newTestManager(t)

	v := &StreamView{}
	v.SetViewModel(&StreamViewModel{BlockTo: true})

	committed, err := m.NavigateViewContext(context.Background(), "main", v)
	require.NoError(t, err)
	require.False(t, committed)
	require.Nil(t, host.content)
}

func TestManager_NavigateContext_IncomingErrorLeavesOldContent(t *testing.T) {
	m, host := newTestManager(t)

	_, err := NavigateToContext[*StreamView](context.Background(), m, "main", nil)
	require.NoError(t, err)
	previous := host.content
	outVM := boundVM[*StreamViewModel](t, host)

	loadErr := errors.New("load failed")
	v := &StreamView{}
	v.SetViewModel(&StreamViewModel{ToErr: loadErr})

	committed, err := m.NavigateViewContext(context.Background(), "main", v)
	require.ErrorIs(t, err, loadErr)
	require.False(t, committed)

	// Old content stays displayed, but the outgoing viewmodel has already
	// been notified by the time the incoming hook failed.
	require.Same(t, previous, host.content)
	require.Contains(t, outVM.Calls, "OnNavigatedFromContext")
}

func TestManager_NavigateContext_HonorsCancellation(t *testing.T) {
	m, host := newTestManager(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	v := &StreamView{}
	v.SetViewModel(&blockingViewModel{})

	committed, err := m.NavigateViewContext(ctx, "main", v)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, committed)
	require.Nil(t, host.content)
}

func TestManager_NavigateViewContext_RejectsNilView(t *testing.T) {
	m, _ := newTestManager(t)

	committed, err := m.NavigateViewContext(context.Background(), "main", nil)
	require.False(t, committed)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestManager_NavigateContext_UnknownHost(t *testing.T) {
	m, _ := newTestManager(t)

	committed, err := NavigateToContext[*StreamView](context.Background(), m, "aside", nil)
	require.False(t, committed)
	require.ErrorIs(t, err, ErrHostNotFound)
	require.Contains(t, err.Error(), `"aside"`)
}
