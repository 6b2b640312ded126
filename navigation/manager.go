package navigation

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/waypoint/factory"
	"github.com/zjrosen/waypoint/log"
	"github.com/zjrosen/waypoint/pubsub"
	"github.com/zjrosen/waypoint/resolver"
)

// HostEvent is published on the manager's event broker when a host
// registers or unregisters.
type HostEvent struct {
	Name string
	Host Host
}

// Manager owns the host registry, the viewmodel resolver, and the instance
// factory, and drives the navigation lifecycle protocol. One Manager is
// typically shared by a whole application; all methods are safe for
// concurrent use, but navigations against the same host must be serialized
// by the caller.
type Manager struct {
	registry HostRegistry
	resolver *resolver.Resolver
	factory  *factory.Factory
	events   *pubsub.Broker[HostEvent]
	tracer   trace.Tracer

	mu       sync.Mutex
	deferred map[string][]deferredRequest
}

// Option configures a Manager.
type Option func(*Manager)

// WithRegistry replaces the default in-memory host registry.
func WithRegistry(r HostRegistry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithTracer wraps every navigation in a span on the given tracer.
func WithTracer(t trace.Tracer) Option {
	return func(m *Manager) { m.tracer = t }
}

// New creates a Manager over the given resolver and factory.
func New(res *resolver.Resolver, fac *factory.Factory, opts ...Option) *Manager {
	m := &Manager{
		registry: NewHostRegistry(),
		resolver: res,
		factory:  fac,
		events:   pubsub.NewBroker[HostEvent](),
		deferred: make(map[string][]deferredRequest),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterHost adds a host under name and flushes any navigation requests
// deferred against it.
func (m *Manager) RegisterHost(name string, h Host) error {
	if err := m.registry.Register(name, h); err != nil {
		return err
	}
	log.Info(log.CatHost, "Host registered", "host", name)
	m.events.Publish(pubsub.HostRegisteredEvent, HostEvent{Name: name, Host: h})
	m.flushDeferred(name)
	return nil
}

// UnregisterHost removes the entry for name. The host itself is untouched;
// the manager never owns host lifetime.
func (m *Manager) UnregisterHost(name string) bool {
	h := m.registry.Get(name)
	if !m.registry.Unregister(name) {
		return false
	}
	log.Info(log.CatHost, "Host unregistered", "host", name)
	m.events.Publish(pubsub.HostUnregisteredEvent, HostEvent{Name: name, Host: h})
	return true
}

// GetHost returns the host registered under name, or nil.
func (m *Manager) GetHost(name string) Host { return m.registry.Get(name) }

// HostNames returns a snapshot of all registered host names.
func (m *Manager) HostNames() []string { return m.registry.Names() }

// HostExists reports whether a host is registered under name.
func (m *Manager) HostExists(name string) bool { return m.registry.Exists(name) }

// Events returns the broker publishing host registration events.
func (m *Manager) Events() *pubsub.Broker[HostEvent] { return m.events }

// Close releases the manager's event broker.
func (m *Manager) Close() {
	m.events.Close()
}

// NavigateView navigates hostName to an already-constructed view. No
// viewmodel resolution happens; lifecycle hooks run against whatever
// viewmodel the view already carries. Returns whether the navigation
// committed; a false guard is reported as (false, nil).
func (m *Manager) NavigateView(hostName string, v View) (bool, error) {
	if v == nil {
		return false, fmt.Errorf("view cannot be nil: %w", ErrInvalidArgument)
	}
	return m.navigate(context.Background(), false, hostName, v, nil, nil, false)
}

// Navigate resolves and constructs a view of viewType plus its viewmodel,
// then runs the synchronous lifecycle protocol against hostName. param is
// forwarded unchanged to the incoming viewmodel's guards and
// notifications.
func (m *Manager) Navigate(hostName string, viewType reflect.Type, param any) (bool, error) {
	if viewType == nil {
		return false, fmt.Errorf("view type cannot be nil: %w", ErrInvalidArgument)
	}
	return m.navigate(context.Background(), false, hostName, nil, viewType, param, true)
}

// NavigateTo is the generic convenience form of Navigate.
func NavigateTo[T View](m *Manager, hostName string, param any) (bool, error) {
	return m.Navigate(hostName, reflect.TypeFor[T](), param)
}

// NavigateViewContext is NavigateView driving the async lifecycle
// contract.
func (m *Manager) NavigateViewContext(ctx context.Context, hostName string, v View) (bool, error) {
	if v == nil {
		return false, fmt.Errorf("view cannot be nil: %w", ErrInvalidArgument)
	}
	return m.navigate(ctx, true, hostName, v, nil, nil, false)
}

// NavigateContext is Navigate driving the async lifecycle contract. The
// call suspends at each hook until it completes; a hook that never returns
// stalls the navigation, which is the caller's responsibility to avoid.
func (m *Manager) NavigateContext(ctx context.Context, hostName string, viewType reflect.Type, param any) (bool, error) {
	if viewType == nil {
		return false, fmt.Errorf("view type cannot be nil: %w", ErrInvalidArgument)
	}
	return m.navigate(ctx, true, hostName, nil, viewType, param, true)
}

// NavigateToContext is the generic convenience form of NavigateContext.
func NavigateToContext[T View](ctx context.Context, m *Manager, hostName string, param any) (bool, error) {
	return m.NavigateContext(ctx, hostName, reflect.TypeFor[T](), param)
}

// navigate runs the lifecycle protocol. Order is fixed:
//
//	1. outgoing CanNavigateFrom - false aborts, nothing changed
//	2. resolve/construct the incoming view and viewmodel
//	3. incoming CanNavigateTo(param) - false aborts, outgoing stays up
//	   and its OnNavigatedFrom does not fire
//	4. outgoing OnNavigatedFrom
//	5. incoming OnNavigatedTo(param)
//	6. bind the viewmodel and swap the host's content
//
// The swap happens only after OnNavigatedTo returns: a failing incoming
// hook leaves the previous content displayed, though the outgoing
// viewmodel has already been notified.
func (m *Manager) navigate(ctx context.Context, async bool, hostName string, v View, viewType reflect.Type, param any, resolveVM bool) (committed bool, err error) {
	if strings.TrimSpace(hostName) == "" {
		return false, fmt.Errorf("hostName cannot be blank: %w", ErrInvalidArgument)
	}

	host := m.registry.Get(hostName)
	if host == nil {
		return false, fmt.Errorf("no host registered under %q: %w", hostName, ErrHostNotFound)
	}

	opID := uuid.NewString()
	targetName := describeTarget(v, viewType)

	if m.tracer != nil {
		var span trace.Span
		ctx, span = m.tracer.Start(ctx, "navigation.navigate",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("navigation.op_id", opID),
				attribute.String("navigation.host", hostName),
				attribute.String("navigation.target", targetName),
				attribute.Bool("navigation.async", async),
			))
		defer func() {
			span.SetAttributes(attribute.Bool("navigation.committed", committed))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.End()
		}()
	}

	outgoing := host.CurrentContent()
	out := newParticipant(m.activeViewModel(host, outgoing))

	ok, err := out.canNavigateFrom(ctx, async)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Debug(log.CatNav, "Navigation cancelled by outgoing guard", "op", opID, "host", hostName, "target", targetName)
		return false, nil
	}

	if v == nil {
		v, err = m.buildView(viewType)
		if err != nil {
			return false, err
		}
	}

	var inVM any
	var bindVM bool
	if holder, ok := v.(ViewModelHolder); ok && holder.ViewModel() != nil {
		// Pre-associated viewmodel: reuse it, lifecycle still runs.
		inVM = holder.ViewModel()
	} else if resolveVM {
		inVM, err = m.buildViewModel(viewType)
		if err != nil {
			return false, err
		}
		bindVM = inVM != nil
	}
	in := newParticipant(inVM)

	ok, err = in.canNavigateTo(ctx, async, param)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Debug(log.CatNav, "Navigation cancelled by incoming guard", "op", opID, "host", hostName, "target", targetName)
		return false, nil
	}

	if err := out.onNavigatedFrom(ctx, async); err != nil {
		return false, err
	}
	if err := in.onNavigatedTo(ctx, async, param); err != nil {
		return false, err
	}

	if bindVM {
		if holder, ok := v.(ViewModelHolder); ok {
			holder.SetViewModel(inVM)
		}
	}

	host.Display(v)
	log.Info(log.CatNav, "Navigated", "op", opID, "host", hostName, "target", targetName, "async", async)
	return true, nil
}

// buildView constructs and type-checks the incoming view.
func (m *Manager) buildView(viewType reflect.Type) (View, error) {
	inst, err := m.factory.CreateView(viewType)
	if err != nil {
		return nil, err
	}
	v, ok := inst.(View)
	if !ok {
		return nil, fmt.Errorf("type %s is not displayable content: %w", resolver.TypeName(viewType), ErrInvalidArgument)
	}
	return v, nil
}

// buildViewModel resolves and constructs the incoming viewmodel. An
// unresolvable view simply gets no viewmodel. Construction failure on a
// convention-derived type is swallowed so the view still displays;
// explicit mappings are a stated intent, their failures propagate.
func (m *Manager) buildViewModel(viewType reflect.Type) (any, error) {
	res, err := m.resolver.Resolve(viewType)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	vm, err := m.factory.CreateViewModel(res.ViewModel)
	if err != nil {
		if res.Explicit {
			return nil, err
		}
		log.Warn(log.CatNav, "ViewModel construction failed, continuing without one",
			"view", resolver.TypeName(viewType), "viewModel", resolver.TypeName(res.ViewModel), "error", err)
		return nil, nil
	}
	return vm, nil
}

// activeViewModel returns the view-local viewmodel of the displayed view,
// or nil when the view has none or merely inherits the host's ambient one.
func (m *Manager) activeViewModel(host Host, v View) any {
	if v == nil {
		return nil
	}
	holder, ok := v.(ViewModelHolder)
	if !ok {
		return nil
	}
	vm := holder.ViewModel()
	if vm == nil {
		return nil
	}
	if amb, ok := host.(AmbientViewModel); ok && sameRef(vm, amb.AmbientViewModel()) {
		return nil
	}
	return vm
}

// sameRef reports whether a and b are the same object. Pointer identity
// for pointer kinds; == for comparable values; false otherwise.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Pointer && rb.Kind() == reflect.Pointer {
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Comparable() && rb.Comparable() {
		return a == b
	}
	return false
}

func describeTarget(v View, viewType reflect.Type) string {
	if viewType != nil {
		return resolver.TypeName(viewType)
	}
	if v != nil {
		return resolver.TypeName(reflect.TypeOf(v))
	}
	return "<nil>"
}
