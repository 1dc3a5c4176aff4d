package event

import (
	"slices"
	"sync"

	"github.com/supplements/backend/internal/domain/shared"
)

// subscription is one handler and the event types it listens to.
// A nil types set means every event.
type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{}
}

func (s *subscription) matches(eventType string) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// HandlerRegistry keeps subscriptions in the order they were made so that
// dispatch order is predictable regardless of wildcard or typed registration.
type HandlerRegistry struct {
	mu   sync.RWMutex
	subs []*subscription
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Register subscribes handler to eventTypes, or to every event when none are given.
// Registering a handler again widens its existing subscription in place, so a
// handler never receives the same event twice.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.subs, func(s *subscription) bool { return s.handler == handler })
	if idx < 0 {
		sub := &subscription{handler: handler}
		if len(eventTypes) > 0 {
			sub.types = make(map[string]struct{}, len(eventTypes))
		}
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
		r.subs = append(r.subs, sub)
		return
	}

	sub := r.subs[idx]
	if sub.types == nil {
		return
	}
	if len(eventTypes) == 0 {
		sub.types = nil
		return
	}
	for _, t := range eventTypes {
		sub.types[t] = struct{}{}
	}
}

// Unregister drops every subscription of handler
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = slices.DeleteFunc(r.subs, func(s *subscription) bool { return s.handler == handler })
}

// HandlersFor returns the handlers subscribed to eventType in registration order
func (r *HandlerRegistry) HandlersFor(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []shared.EventHandler
	for _, s := range r.subs {
		if s.matches(eventType) {
			out = append(out, s.handler)
		}
	}
	return out
}

// Len returns the number of distinct subscribed handlers
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
