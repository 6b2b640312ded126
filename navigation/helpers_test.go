package navigation

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/waypoint/factory"
	"github.com/zjrosen/waypoint/resolver"
)

// === Test Hosts ===

// fakeHost is a minimal Host recording what gets displayed.
type fakeHost struct {
	content  View
	ambient  any
	displays int
}

func (h *fakeHost) CurrentContent() View { return h.content }

func (h *fakeHost) Display(v View) {
	h.content = v
	h.displays++
}

func (h *fakeHost) AmbientViewModel() any { return h.ambient }

// === Test Views ===

// WidgetView pairs with WidgetViewModel by convention.
type WidgetView struct {
	ViewModelSlot

	width, height int
}

func (v *WidgetView) Init() tea.Cmd              { return nil }
func (v *WidgetView) Update(msg tea.Msg) tea.Cmd { return nil }
func (v *WidgetView) View() string               { return "widget" }
func (v *WidgetView) SetSize(w, h int)           { v.width, v.height = w, h }

// PlainView has no viewmodel slot at all.
type PlainView struct{}

func (v *PlainView) Init() tea.Cmd              { return nil }
func (v *PlainView) Update(msg tea.Msg) tea.Cmd { return nil }
func (v *PlainView) View() string               { return "plain" }

// BannerView is bound to Announcement through an explicit mapping.
type BannerView struct {
	ViewModelSlot
}

func (v *BannerView) Init() tea.Cmd              { return nil }
func (v *BannerView) Update(msg tea.Msg) tea.Cmd { return nil }
func (v *BannerView) View() string               { return "banner" }

// StreamView pairs with StreamViewModel by convention.
type StreamView struct {
	ViewModelSlot
}

func (v *StreamView) Init() tea.Cmd              { return nil }
func (v *StreamView) Update(msg tea.Msg) tea.Cmd { return nil }
func (v *StreamView) View() string               { return "stream" }

// OrphanView resolves to no viewmodel: no convention match, no mapping.
type OrphanView struct {
	ViewModelSlot
}

func (v *OrphanView) Init() tea.Cmd              { return nil }
func (v *OrphanView) Update(msg tea.Msg) tea.Cmd { return nil }
func (v *OrphanView) View() string               { return "orphan" }

// === Test ViewModels ===

// WidgetViewModel implements the synchronous lifecycle and records every
// hook call. Zero value allows all navigation.
type WidgetViewModel struct {
	Calls     []string
	LastParam any

	BlockTo   bool
	BlockFrom bool
}

func (vm *WidgetViewModel) CanNavigateTo(param any) bool {
	vm.Calls = append(vm.Calls, "CanNavigateTo")
	vm.LastParam = param
	return !vm.BlockTo
}

func (vm *WidgetViewModel) OnNavigatedTo(param any) {
	vm.Calls = append(vm.Calls, "OnNavigatedTo")
	vm.LastParam = param
}

func (vm *WidgetViewModel) CanNavigateFrom() bool {
	vm.Calls = append(vm.Calls, "CanNavigateFrom")
	return !vm.BlockFrom
}

func (vm *WidgetViewModel) OnNavigatedFrom() {
	vm.Calls = append(vm.Calls, "OnNavigatedFrom")
}

// Announcement is the unconventionally named viewmodel behind BannerView.
type Announcement struct {
	Shown int
}

func (vm *Announcement) CanNavigateTo(param any) bool { return true }
func (vm *Announcement) OnNavigatedTo(param any)      { vm.Shown++ }
func (vm *Announcement) CanNavigateFrom() bool        { return true }
func (vm *Announcement) OnNavigatedFrom()             {}

// StreamViewModel implements the asynchronous lifecycle and records every
// hook call. Zero value allows all navigation with nil errors.
type StreamViewModel struct {
	Calls     []string
	LastParam any

	BlockTo   bool
	BlockFrom bool
	ToErr     error
	FromErr   error
}

func (vm *StreamViewModel) CanNavigateToContext(ctx context.Context, param any) (bool, error) {
	vm.Calls = append(vm.Calls, "CanNavigateToContext")
	vm.LastParam = param
	return !vm.BlockTo, nil
}

func (vm *StreamViewModel) OnNavigatedToContext(ctx context.Context, param any) error {
	vm.Calls = append(vm.Calls, "OnNavigatedToContext")
	vm.LastParam = param
	return vm.ToErr
}

func (vm *StreamViewModel) CanNavigateFromContext(ctx context.Context) (bool, error) {
	vm.Calls = append(vm.Calls, "CanNavigateFromContext")
	return !vm.BlockFrom, nil
}

func (vm *StreamViewModel) OnNavigatedFromContext(ctx context.Context) error {
	vm.Calls = append(vm.Calls, "OnNavigatedFromContext")
	return vm.FromErr
}

// dualViewModel implements both contracts so entry-point preference can be
// observed.
type dualViewModel struct {
	SyncCalls  int
	AsyncCalls int
}

func (vm *dualViewModel) CanNavigateTo(param any) bool { vm.SyncCalls++; return true }
func (vm *dualViewModel) OnNavigatedTo(param any)      { vm.SyncCalls++ }
func (vm *dualViewModel) CanNavigateFrom() bool        { vm.SyncCalls++; return true }
func (vm *dualViewModel) OnNavigatedFrom()             { vm.SyncCalls++ }

func (vm *dualViewModel) CanNavigateToContext(ctx context.Context, param any) (bool, error) {
	vm.AsyncCalls++
	return true, nil
}

func (vm *dualViewModel) OnNavigatedToContext(ctx context.Context, param any) error {
	vm.AsyncCalls++
	return nil
}

func (vm *dualViewModel) CanNavigateFromContext(ctx context.Context) (bool, error) {
	vm.AsyncCalls++
	return true, nil
}

func (vm *dualViewModel) OnNavigatedFromContext(ctx context.Context) error {
	vm.AsyncCalls++
	return nil
}

// === Builders ===

const testModule = "test"

// newTestManifest registers the shared view and viewmodel fixtures.
func newTestManifest(t *testing.T) *resolver.Manifest {
	t.Helper()
	manifest := resolver.NewManifest()

	require.NoError(t, resolver.AddViewOf[WidgetView](manifest, testModule, nil))
	require.NoError(t, resolver.AddViewOf[PlainView](manifest, testModule, nil))
	require.NoError(t, resolver.AddViewOf[BannerView](manifest, testModule, nil))
	require.NoError(t, resolver.AddViewOf[StreamView](manifest, testModule, nil))
	require.NoError(t, resolver.AddViewOf[OrphanView](manifest, testModule, nil))
	require.NoError(t, resolver.AddViewModelOf[WidgetViewModel](manifest, testModule, nil))
	require.NoError(t, resolver.AddViewModelOf[Announcement](manifest, testModule, nil))
	require.NoError(t, resolver.AddViewModelOf[StreamViewModel](manifest, testModule, nil))

	return manifest
}

// newTestManager builds a manager over the shared fixtures with the
// BannerView -> Announcement mapping installed and a host registered
// under "main".
func newTestManager(t *testing.T) (*Manager, *fakeHost) {
	t.Helper()

	manifest := newTestManifest(t)
	res := resolver.New(manifest)
	require.NoError(t, resolver.Map[BannerView, Announcement](res))

	m := New(res, factory.New(manifest))
	t.Cleanup(m.Close)

	host := &fakeHost{}
	require.NoError(t, m.RegisterHost("main", host))
	return m, host
}

// newBareManager is newTestManager without a *testing.T, for property
// tests. Fixture registration cannot fail; any error here panics.
func newBareManager() (*Manager, *fakeHost) {
	manifest := resolver.NewManifest()
	regs := []error{
		resolver.AddViewOf[WidgetView](manifest, testModule, nil),
		resolver.AddViewOf[BannerView](manifest, testModule, nil),
		resolver.AddViewModelOf[WidgetViewModel](manifest, testModule, nil),
		resolver.AddViewModelOf[Announcement](manifest, testModule, nil),
	}
	for _, err := range regs {
		if err != nil {
			panic(err)
		}
	}

	res := resolver.New(manifest)
	if err := resolver.Map[BannerView, Announcement](res); err != nil {
		panic(err)
	}

	m := New(res, factory.New(manifest))
	host := &fakeHost{}
	if err := m.RegisterHost("main", host); err != nil {
		panic(err)
	}
	return m, host
}

// boundVM extracts the viewmodel bound to the host's current content.
func boundVM[T any](t *testing.T, host *fakeHost) T {
	t.Helper()
	holder, ok := host.content.(ViewModelHolder)
	require.True(t, ok, "current content should hold a viewmodel")
	vm, ok := holder.ViewModel().(T)
	require.True(t, ok, "bound viewmodel has unexpected type %T", holder.ViewModel())
	return vm
}
