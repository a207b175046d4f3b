// Package testutil provides shared helpers for the shop backend test
// suites: event capture, identity fixtures, and a stub address verifier.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shop/backend/internal/domain/shared"
)

// CapturingHandler records every event delivered to it. It is safe for
// concurrent use so it can sit behind an async bus in tests.
type CapturingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	captured   []shared.DomainEvent
	err        error
}

// NewCapturingHandler creates a handler subscribed to the given event
// types. No types means the handler captures every event.
func NewCapturingHandler(eventTypes ...string) *CapturingHandler {
	return &CapturingHandler{
		eventTypes: eventTypes,
		captured:   make([]shared.DomainEvent, 0),
	}
}

// EventTypes returns the event types this handler subscribes to.
func (h *CapturingHandler) EventTypes() []string {
	return h.eventTypes
}

// Handle records the event and returns the configured error, if any.
func (h *CapturingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.captured = append(h.captured, event)
	return h.err
}

// Captured returns a copy of all captured events in delivery order.
func (h *CapturingHandler) Captured() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]shared.DomainEvent, len(h.captured))
	copy(out, h.captured)
	return out
}

// CapturedTypes returns the event type of every captured event in order.
func (h *CapturingHandler) CapturedTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	types := make([]string, 0, len(h.captured))
	for _, e := range h.captured {
		types = append(types, e.EventType())
	}
	return types
}

// Count returns the number of captured events.
func (h *CapturingHandler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.captured)
}

// FailWith makes subsequent Handle calls return err.
func (h *CapturingHandler) FailWith(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

// Reset clears captured events and the configured error.
func (h *CapturingHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.captured = h.captured[:0]
	h.err = nil
}

// WaitForCondition polls condition until it returns true or timeout
// elapses. Returns whether the condition was met.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForEventCount waits until the handler has captured at least n events.
func WaitForEventCount(t *testing.T, handler *CapturingHandler, n int, timeout time.Duration) bool {
	t.Helper()

	return WaitForCondition(t, func() bool {
		return handler.Count() >= n
	}, timeout)
}
