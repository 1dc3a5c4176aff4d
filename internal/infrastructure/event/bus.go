// Package event provides the in-process domain event bus. Events are
// published after the owning transaction commits; handler failures are
// logged and never reach the publisher.
package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/supplements/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus implements EventBus with synchronous in-memory dispatch
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	stopped  atomic.Bool
	failures atomic.Int64
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish dispatches events to their handlers in registration order.
// A failing handler does not stop the remaining handlers.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if b.stopped.Load() {
		b.logger.Warn("event bus stopped, dropping events", zap.Int("count", len(events)))
		return nil
	}
	for _, event := range events {
		if event == nil {
			continue
		}
		for _, handler := range b.registry.HandlersFor(event.EventType()) {
			if err := b.dispatchToHandler(ctx, handler, event); err != nil {
				b.failures.Add(1)
				b.logger.Error("handler failed to process event",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.String("aggregate_type", event.AggregateType()),
					zap.String("aggregate_id", event.AggregateID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. Without explicit types the handler's own
// EventTypes are used; an empty list subscribes to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start (re)enables dispatch
func (b *InMemoryEventBus) Start(context.Context) error {
	b.stopped.Store(false)
	b.logger.Info("event bus started", zap.Int("handlers", b.registry.Len()))
	return nil
}

// Stop disables dispatch. Later publishes are dropped.
func (b *InMemoryEventBus) Stop(context.Context) error {
	b.stopped.Store(true)
	b.logger.Info("event bus stopped", zap.Int64("handler_failures", b.failures.Load()))
	return nil
}

// Failures returns how many handler invocations failed or panicked
func (b *InMemoryEventBus) Failures() int64 {
	return b.failures.Load()
}

func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
