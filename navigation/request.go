package navigation

import (
	"context"
	"errors"
	"reflect"

	"github.com/zjrosen/waypoint/log"
)

// NavigationResult reports the outcome of a RequestNavigate. The "host not
// ready" case never surfaces as a panic or a returned error from the
// request call itself; it lands in Err here.
type NavigationResult struct {
	// Committed is true when the content swap happened. False with a nil
	// Err means a lifecycle guard cancelled the navigation.
	Committed bool

	Err error
}

// deferredRequest is a navigation waiting for its host to register.
type deferredRequest struct {
	viewType reflect.Type
	param    any
	callback func(NavigationResult)
}

type requestOptions struct {
	deferRetry bool
	callbacks  []func(NavigationResult)
}

// RequestOption configures a RequestNavigate call.
type RequestOption func(*requestOptions)

// WithResult registers a callback receiving the outcome. Multiple
// callbacks run in registration order.
func WithResult(fn func(NavigationResult)) RequestOption {
	return func(o *requestOptions) {
		if fn != nil {
			o.callbacks = append(o.callbacks, fn)
		}
	}
}

// WithDeferredRetry queues the request when the host is not yet registered
// and retries it, exactly once, the moment that host registers. Without
// this option an unknown host is reported immediately through the result.
func WithDeferredRetry() RequestOption {
	return func(o *requestOptions) { o.deferRetry = true }
}

func (o requestOptions) deliver(r NavigationResult) {
	for _, fn := range o.callbacks {
		fn(r)
	}
}

// RequestNavigate attempts a synchronous navigation and reports the
// outcome through the registered callbacks instead of a return value.
// Deferred retries run, and deliver their result, on the goroutine that
// registers the missing host, or on the requesting goroutine when the
// registration lands mid-call.
func (m *Manager) RequestNavigate(hostName string, viewType reflect.Type, param any, opts ...RequestOption) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	committed, err := m.Navigate(hostName, viewType, param)
	if err != nil && o.deferRetry && errors.Is(err, ErrHostNotFound) {
		m.mu.Lock()
		m.deferred[hostName] = append(m.deferred[hostName], deferredRequest{
			viewType: viewType,
			param:    param,
			callback: o.deliver,
		})
		m.mu.Unlock()
		log.Debug(log.CatNav, "Navigation deferred until host registers", "host", hostName, "target", describeTarget(nil, viewType))
		// The host may have registered between the failed lookup and the
		// append, in which case its flush already ran over an empty queue.
		// Flush again; delete-under-lock keeps each request to one retry.
		if m.registry.Exists(hostName) {
			m.flushDeferred(hostName)
		}
		return
	}

	o.deliver(NavigationResult{Committed: committed, Err: err})
}

// RequestNavigateContext is RequestNavigate with an awaited result: it
// blocks until the outcome is known or ctx is done, which covers deferred
// retries against hosts that never register.
func (m *Manager) RequestNavigateContext(ctx context.Context, hostName string, viewType reflect.Type, param any, opts ...RequestOption) NavigationResult {
	ch := make(chan NavigationResult, 1)
	opts = append(opts, WithResult(func(r NavigationResult) { ch <- r }))

	m.RequestNavigate(hostName, viewType, param, opts...)

	select {
	case r := <-ch:
		return r
	case <-ctx.Done():
		return NavigationResult{Err: ctx.Err()}
	}
}

// DeferredCount returns the number of requests waiting on hostName.
func (m *Manager) DeferredCount(hostName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deferred[hostName])
}

// flushDeferred retries requests queued against name. Each request is
// retried once; whatever happens is the final result.
func (m *Manager) flushDeferred(name string) {
	m.mu.Lock()
	pending := m.deferred[name]
	delete(m.deferred, name)
	m.mu.Unlock()

	for _, req := range pending {
		committed, err := m.Navigate(name, req.viewType, req.param)
		req.callback(NavigationResult{Committed: committed, Err: err})
	}
}
