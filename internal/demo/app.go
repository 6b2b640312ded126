// Package demo is the example application shipped with waypoint. It wires
// a manifest, resolver, factory, and manager around two contenthost
// regions: a main region the user navigates, and a status bar fed from
// the main region's navigation events.
package demo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/waypoint/contenthost"
	"github.com/zjrosen/waypoint/factory"
	"github.com/zjrosen/waypoint/internal/config"
	"github.com/zjrosen/waypoint/internal/demo/viewmodels"
	"github.com/zjrosen/waypoint/internal/demo/views"
	"github.com/zjrosen/waypoint/log"
	"github.com/zjrosen/waypoint/navigation"
	"github.com/zjrosen/waypoint/pubsub"
	"github.com/zjrosen/waypoint/resolver"
)

const (
	// MainHost is the primary navigation region.
	MainHost = "main"

	// StatusHost is the status bar region.
	StatusHost = "status"

	demoModule = "waypoint-demo"

	statusBarHeight = 1
)

// Version and Commit identify the running build. Overridden by the build
// via the cmd package.
var (
	Version = "dev"
	Commit  = "unknown"
)

// KeyMap holds the demo key bindings.
type KeyMap struct {
	Home     key.Binding
	Settings key.Binding
	Product  key.Binding
	About    key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Product:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "product")),
		About:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "about")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// container satisfies factory.Container for the viewmodels that need more
// than zero-value construction: the product detail gets constructor
// injection, and home is a single long-lived instance so its visit count
// survives re-navigation.
type container struct {
	catalog *viewmodels.Catalog
	home    *viewmodels.HomeViewModel
}

func (c *container) TryResolve(t reflect.Type) (any, bool) {
	switch t {
	case reflect.TypeFor[viewmodels.ProductDetailViewModel]():
		return viewmodels.NewProductDetailViewModel(c.catalog), true
	case reflect.TypeFor[viewmodels.HomeViewModel]():
		return c.home, true
	}
	return nil, false
}

// buildManifest registers every demo view and viewmodel type.
func buildManifest() (*resolver.Manifest, error) {
	manifest := resolver.NewManifest()

	regs := []error{
		resolver.AddViewOf[views.HomeView](manifest, demoModule, nil),
		resolver.AddViewOf[views.SettingsView](manifest, demoModule, nil),
		resolver.AddViewOf[views.ProductDetailView](manifest, demoModule, nil),
		resolver.AddViewOf[views.AboutView](manifest, demoModule, nil),
		resolver.AddViewOf[views.StatusView](manifest, demoModule, nil),
		resolver.AddViewModelOf[viewmodels.HomeViewModel](manifest, demoModule, nil),
		resolver.AddViewModelOf[viewmodels.SettingsViewModel](manifest, demoModule, nil),
		resolver.AddViewModelOf[viewmodels.ProductDetailViewModel](manifest, demoModule, nil),
		resolver.AddViewModelOf[viewmodels.AppInfo](manifest, demoModule, func() any {
			return &viewmodels.AppInfo{Version: Version, Commit: Commit}
		}),
	}
	for _, err := range regs {
		if err != nil {
			return nil, fmt.Errorf("building manifest: %w", err)
		}
	}
	return manifest, nil
}

// Model is the demo application root.
type Model struct {
	cfg     config.Config
	keys    KeyMap
	manager *navigation.Manager

	mainHost   *contenthost.Model
	statusHost *contenthost.Model
	statusVM   *viewmodels.StatusViewModel

	listener *pubsub.ContinuousListener[navigation.ContentChange]
	cancel   context.CancelFunc

	width, height int
	err           error
}

// NewModel assembles the demo application over cfg. The manager option is
// typically navigation.WithTracer when tracing is enabled.
func NewModel(cfg config.Config, opts ...navigation.Option) (*Model, error) {
	manifest, err := buildManifest()
	if err != nil {
		return nil, err
	}

	res := resolver.New(manifest)
	if err := resolver.Map[views.AboutView, viewmodels.AppInfo](res); err != nil {
		return nil, err
	}

	fac := factory.New(manifest, factory.WithContainer(&container{
		catalog: viewmodels.NewCatalog(),
		home:    &viewmodels.HomeViewModel{},
	}))

	manager := navigation.New(res, fac, opts...)

	statusVM := &viewmodels.StatusViewModel{LastTarget: "-"}
	statusView := &views.StatusView{}
	statusView.SetViewModel(statusVM)

	mainHost := contenthost.New()
	statusHost := contenthost.New()

	if err := manager.RegisterHost(MainHost, mainHost); err != nil {
		return nil, err
	}
	if err := manager.RegisterHost(StatusHost, statusHost); err != nil {
		return nil, err
	}
	if _, err := manager.NavigateView(StatusHost, statusView); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		cfg:        cfg,
		keys:       DefaultKeyMap(),
		manager:    manager,
		mainHost:   mainHost,
		statusHost: statusHost,
		statusVM:   statusVM,
		listener:   pubsub.NewContinuousListener(ctx, mainHost.Navigated()),
		cancel:     cancel,
	}, nil
}

// Manager exposes the navigation manager, mainly for tests.
func (m *Model) Manager() *navigation.Manager { return m.manager }

// Init navigates to the configured start view and starts listening for
// navigation events.
func (m *Model) Init() tea.Cmd {
	if _, err := m.navigateStart(); err != nil {
		m.err = err
	}
	return tea.Batch(m.mainHost.Init(), m.listener.Listen())
}

func (m *Model) navigateStart() (bool, error) {
	switch m.cfg.StartView {
	case "settings":
		return navigation.NavigateTo[*views.SettingsView](m.manager, MainHost, nil)
	case "about":
		return navigation.NavigateTo[*views.AboutView](m.manager, MainHost, nil)
	default:
		return navigation.NavigateTo[*views.HomeView](m.manager, MainHost, nil)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		contentHeight := msg.Height
		if m.cfg.UI.ShowStatusBar {
			contentHeight -= statusBarHeight
		}
		m.mainHost.SetSize(msg.Width, contentHeight)
		m.statusHost.SetSize(msg.Width, statusBarHeight)
		return m, nil

	case navErrMsg:
		m.err = msg.err
		return m, nil

	case pubsub.Event[navigation.ContentChange]:
		m.statusVM.Count++
		m.statusVM.LastTarget = targetLabel(msg.Payload.Content)
		return m, m.listener.Listen()

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	return m, m.mainHost.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Home):
		_, err = navigation.NavigateTo[*views.HomeView](m.manager, MainHost, nil)
	case key.Matches(msg, m.keys.Settings):
		_, err = navigation.NavigateTo[*views.SettingsView](m.manager, MainHost, nil)
	case key.Matches(msg, m.keys.Product):
		return m.navigateProduct(42), true
	case key.Matches(msg, m.keys.About):
		_, err = navigation.NavigateTo[*views.AboutView](m.manager, MainHost, nil)
	default:
		return nil, false
	}
	if err != nil {
		m.err = err
	}
	return nil, true
}

// navigateProduct runs the async protocol off the update loop so the
// simulated product load does not block rendering.
func (m *Model) navigateProduct(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.UI.NavigateTimeout)
		defer cancel()

		committed, err := navigation.NavigateToContext[*views.ProductDetailView](ctx, m.manager, MainHost, id)
		if err != nil {
			log.ErrorErr(log.CatUI, "Product navigation failed", err, "product", id)
			return navErrMsg{err: err}
		}
		if !committed {
			log.Debug(log.CatUI, "Product navigation declined", "product", id)
		}
		return nil
	}
}

type navErrMsg struct{ err error }

func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	main := m.mainHost.View()
	if !m.cfg.UI.ShowStatusBar {
		return main
	}

	body := lipgloss.NewStyle().Height(max(m.height-statusBarHeight, 0)).Render(main)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusHost.View())
}

// Close tears down the event subscription and the manager.
func (m *Model) Close() {
	m.cancel()
	m.manager.Close()
}

func targetLabel(v navigation.View) string {
	if v == nil {
		return "-"
	}
	t := resolver.NormalizeType(reflect.TypeOf(v))
	return t.Name()
}
