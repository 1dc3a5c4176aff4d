package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/shared"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func testProduct() *inventory.Product {
	p, err := inventory.NewProduct("Whey 2lb", "Optimum", "protein")
	if err != nil {
		panic(err)
	}
	return p
}

func TestInMemoryEventBus_PublishRoutesByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	received := newRecordingHandler(inventory.EventTypeStockReceived)
	lowStock := newRecordingHandler(inventory.EventTypeLowStockDetected)
	bus.Subscribe(received)
	bus.Subscribe(lowStock)

	p := testProduct()
	ev := inventory.NewStockReceivedEvent(p, decimal.NewFromInt(10), decimal.RequireFromString("15.50"))
	require.NoError(t, bus.Publish(context.Background(), ev))

	require.Len(t, received.received(), 1)
	assert.Same(t, ev, received.received()[0])
	assert.Empty(t, lowStock.received())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newRecordingHandler(inventory.EventTypeStockReceived)
	bus.Subscribe(h, inventory.EventTypeStockRestored)

	p := testProduct()
	require.NoError(t, bus.Publish(context.Background(),
		inventory.NewStockReceivedEvent(p, decimal.NewFromInt(1), decimal.NewFromInt(1)),
		inventory.NewStockRestoredEvent(p, decimal.NewFromInt(1), decimal.NewFromInt(1)),
	))

	require.Len(t, h.received(), 1)
	assert.Equal(t, inventory.EventTypeStockRestored, h.received()[0].EventType())
}

func TestInMemoryEventBus_WildcardReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	all := newRecordingHandler()
	bus.Subscribe(all)

	p := testProduct()
	require.NoError(t, bus.Publish(context.Background(),
		inventory.NewStockConsumedEvent(p, decimal.NewFromInt(2), decimal.NewFromInt(20)),
		inventory.NewLowStockDetectedEvent(p),
		nil,
	))

	assert.Len(t, all.received(), 2)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newRecordingHandler(inventory.EventTypeLowStockDetected)
	failing.err = errors.New("redis unavailable")
	panicking := newRecordingHandler(inventory.EventTypeLowStockDetected)
	panicking.panicWith = "boom"
	healthy := newRecordingHandler(inventory.EventTypeLowStockDetected)
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), inventory.NewLowStockDetectedEvent(testProduct()))

	require.NoError(t, err)
	assert.Len(t, healthy.received(), 1)
	assert.Equal(t, int64(2), bus.Failures())
	assert.Equal(t, 2, logs.FilterMessage("handler failed to process event").Len())
}

func TestInMemoryEventBus_StopDropsEvents(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := newRecordingHandler()
	bus.Subscribe(h)
	ctx := context.Background()

	require.NoError(t, bus.Stop(ctx))
	require.NoError(t, bus.Publish(ctx, inventory.NewLowStockDetectedEvent(testProduct())))
	assert.Empty(t, h.received())

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, inventory.NewLowStockDetectedEvent(testProduct())))
	assert.Len(t, h.received(), 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newRecordingHandler(inventory.EventTypeStockReceived)
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	p := testProduct()
	require.NoError(t, bus.Publish(context.Background(),
		inventory.NewStockReceivedEvent(p, decimal.NewFromInt(1), decimal.NewFromInt(1))))
	assert.Empty(t, h.received())
}

func TestInMemoryEventBus_ConcurrentPublish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newRecordingHandler()
	bus.Subscribe(h)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), inventory.NewLowStockDetectedEvent(testProduct()))
		}()
	}
	wg.Wait()
	assert.Len(t, h.received(), 20)
}
