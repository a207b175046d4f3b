package event

import (
	"context"
	"sync"

	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	// DefaultWorkerCount is the default number of async dispatch workers
	DefaultWorkerCount = 4
	// DefaultQueueSize is the default async dispatch queue capacity
	DefaultQueueSize = 256
)

type asyncTask struct {
	handler shared.EventHandler
	event   shared.DomainEvent
}

// AsyncEventBus extends the synchronous bus with a background worker pool
// for handlers that must not run on the publisher's goroutine. For each
// event, synchronous handlers complete before any asynchronous handler is
// scheduled, and scheduling itself never blocks Publish: when the queue is
// full the task is dropped with a warning rather than stalling the caller.
type AsyncEventBus struct {
	*InMemoryEventBus
	asyncRegistry *HandlerRegistry
	queue         chan asyncTask
	workers       int
	wg            sync.WaitGroup
	logger        *zap.Logger

	mu      sync.Mutex
	started bool
}

// NewAsyncEventBus creates a new AsyncEventBus. Non-positive workers or
// queueSize fall back to the defaults.
func NewAsyncEventBus(logger *zap.Logger, workers, queueSize int) *AsyncEventBus {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &AsyncEventBus{
		InMemoryEventBus: NewInMemoryEventBus(logger),
		asyncRegistry:    NewHandlerRegistry(),
		queue:            make(chan asyncTask, queueSize),
		workers:          workers,
		logger:           logger,
	}
}

// SubscribeAsync registers a handler for background dispatch.
// If no event types are provided, the handler receives all events.
func (b *AsyncEventBus) SubscribeAsync(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.asyncRegistry.Register(handler, eventTypes...)
	b.logger.Debug("async handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Publish runs synchronous handlers inline, then schedules asynchronous
// handlers for the same events on the worker pool
func (b *AsyncEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if err := b.InMemoryEventBus.Publish(ctx, events...); err != nil {
		return err
	}

	for _, event := range events {
		for _, handler := range b.asyncRegistry.GetHandlers(event.EventType()) {
			select {
			case b.queue <- asyncTask{handler: handler, event: event}:
			default:
				b.logger.Warn("async dispatch queue full, dropping task",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
				)
			}
		}
	}
	return nil
}

// Start launches the worker pool
func (b *AsyncEventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return nil
	}
	b.started = true

	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.worker()
	}

	return b.InMemoryEventBus.Start(ctx)
}

// Stop closes the queue and drains pending tasks before returning
func (b *AsyncEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return b.InMemoryEventBus.Stop(ctx)
	}
	b.started = false
	close(b.queue)
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		b.logger.Warn("async event bus stopped before draining", zap.Error(ctx.Err()))
	}

	return b.InMemoryEventBus.Stop(ctx)
}

func (b *AsyncEventBus) worker() {
	defer b.wg.Done()
	for task := range b.queue {
		if err := b.dispatchToHandler(context.Background(), task.handler, task.event); err != nil {
			b.logger.Error("async handler failed to process event",
				zap.String("event_type", task.event.EventType()),
				zap.String("event_id", task.event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

var _ shared.EventBus = (*AsyncEventBus)(nil)
