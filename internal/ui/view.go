package ui

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/aanand-mishra/students-client/internal/service"
	"github.com/aanand-mishra/students-client/internal/signal"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled by user")

// View is one screen of the application.
type View interface {
	// Activate binds the view and runs its initial fetch, if any.
	// Failures of that fetch are reported through the error signal, not
	// through the returned error.
	Activate(ctx context.Context, route Route) error
	// Deactivate drops every binding and pending timer. In-flight
	// service calls are left to finish.
	Deactivate()
	Render(w io.Writer) error
}

// Confirmer gates destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// binding mirrors the service's loading and error signals into view
// state. Every view embeds one.
type binding struct {
	svc  *service.Students
	subs signal.Subscriptions

	mu      sync.Mutex
	closed  bool
	loading bool
	errMsg  string
}

// bind subscribes to loading and error. It reports false when the view
// was already deactivated, in which case nothing is subscribed.
func (b *binding) bind() bool {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return false
	}

	b.subs.Add(b.svc.Loading.Subscribe(func(v bool) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.loading = v
	}))
	b.subs.Add(b.svc.Error.Subscribe(func(msg string) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.errMsg = msg
	}))
	return true
}

func (b *binding) unbind() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.subs.Close()
}

// Loading reports whether a request is in flight.
func (b *binding) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// ErrorMessage returns the message shown in the error banner.
func (b *binding) ErrorMessage() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

func (b *binding) clearError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errMsg = ""
}

func (b *binding) active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed
}
