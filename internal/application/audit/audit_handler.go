package audit

import (
	"context"

	"github.com/shop/backend/internal/domain/audit"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditedEventTypes lists every event type that gets an audit trail entry
var AuditedEventTypes = []string{
	catalog.EventTypeProductCreated,
	catalog.EventTypeProductUpdated,
	catalog.EventTypeProductDeleted,
	catalog.EventTypeProductRestored,
	catalog.EventTypeStockReserved,
	catalog.EventTypeStockReleased,
	cart.EventTypeCartItemAdded,
	cart.EventTypeCartItemQuantityUpdated,
	cart.EventTypeCartItemRemoved,
	cart.EventTypeCartSubmitted,
	order.EventTypeOrderCreated,
}

// LogHandler writes one audit entry per dispatched domain event. Sink
// failures are logged and swallowed: the business transaction the event
// came from has already committed and must not be affected.
type LogHandler struct {
	repo   audit.LogRepository
	logger *zap.Logger
}

// NewLogHandler creates a new LogHandler
func NewLogHandler(repo audit.LogRepository, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		repo:   repo,
		logger: logger,
	}
}

// Handle writes the audit entry for one event
func (h *LogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry, err := audit.NewLogEntryFromEvent(event)
	if err != nil {
		h.logger.Error("failed to build audit entry",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
		return nil
	}

	if err := h.repo.Save(ctx, entry); err != nil {
		h.logger.Error("failed to save audit entry",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
	}
	return nil
}

// EventTypes returns the event types this handler subscribes to
func (h *LogHandler) EventTypes() []string {
	return AuditedEventTypes
}

var _ shared.EventHandler = (*LogHandler)(nil)
