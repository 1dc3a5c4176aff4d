package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/supplements/backend/internal/domain/shared"
)

// RecordingPublisher implements shared.EventPublisher and keeps every published event
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

// Publish records events, then returns the configured error
func (p *RecordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

// SetError makes later Publish calls fail after recording
func (p *RecordingPublisher) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Events returns a copy of the recorded events
func (p *RecordingPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

// Types returns the recorded event types in publish order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// OfType returns the recorded events of one type
func (p *RecordingPublisher) OfType(eventType string) []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []shared.DomainEvent
	for _, e := range p.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets recorded events and the configured error
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.err = nil
}

var _ shared.EventPublisher = (*RecordingPublisher)(nil)

// MockEventHandler is a shared.EventHandler that records what it receives
type MockEventHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
}

// NewMockEventHandler creates a handler subscribed to eventTypes
func NewMockEventHandler(eventTypes ...string) *MockEventHandler {
	return &MockEventHandler{eventTypes: eventTypes}
}

// EventTypes implements shared.EventHandler
func (h *MockEventHandler) EventTypes() []string {
	return h.eventTypes
}

// Handle implements shared.EventHandler
func (h *MockEventHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

// Handled returns all handled events
func (h *MockEventHandler) Handled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

// HandledCount returns the number of handled events
func (h *MockEventHandler) HandledCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

// SetError sets the error to return from Handle
func (h *MockEventHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

var _ shared.EventHandler = (*MockEventHandler)(nil)

// WaitForCondition polls condition until it holds or timeout passes
func WaitForCondition(t *testing.T, condition func() bool, timeout, interval time.Duration) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(interval)
	}
	return false
}
