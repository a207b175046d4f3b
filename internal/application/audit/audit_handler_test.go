package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	auditdomain "github.com/shop/backend/internal/domain/audit"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLogRepo struct {
	entries []*auditdomain.LogEntry
	saveErr error
}

func (r *fakeLogRepo) Save(_ context.Context, entry *auditdomain.LogEntry) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeLogRepo) FindByAggregate(_ context.Context, _ string, _ uuid.UUID, _ shared.Filter) ([]auditdomain.LogEntry, int64, error) {
	return nil, 0, nil
}

func (r *fakeLogRepo) FindAll(_ context.Context, _ shared.Filter) ([]auditdomain.LogEntry, int64, error) {
	return nil, 0, nil
}

func reservedEvent(t *testing.T) shared.DomainEvent {
	t.Helper()
	price, err := valueobject.NewMoneyUSDFromString("10.00")
	require.NoError(t, err)
	product, err := catalog.NewProduct("Widget", "", price, 100, uuid.New())
	require.NoError(t, err)
	product.ClearDomainEvents()
	require.NoError(t, product.ReserveStock(5, uuid.New()))
	return product.GetDomainEvents()[0]
}

func TestLogHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("writes one entry per event with the aggregate reference from the event", func(t *testing.T) {
		repo := &fakeLogRepo{}
		handler := NewLogHandler(repo, zap.NewNop())

		event := reservedEvent(t)
		require.NoError(t, handler.Handle(ctx, event))

		require.Len(t, repo.entries, 1)
		entry := repo.entries[0]
		assert.Equal(t, event.EventID(), entry.EventID)
		assert.Equal(t, catalog.EventTypeStockReserved, entry.EventType)
		assert.Equal(t, catalog.AggregateTypeProduct, entry.AggregateType)
		assert.Equal(t, event.AggregateID(), entry.AggregateID)
		assert.Equal(t, event.ActorID(), entry.ActorID)
		assert.Contains(t, entry.Payload, "\"quantity_reserved\":5")
	})

	t.Run("swallows sink failures", func(t *testing.T) {
		repo := &fakeLogRepo{saveErr: errors.New("sink down")}
		handler := NewLogHandler(repo, zap.NewNop())

		err := handler.Handle(ctx, reservedEvent(t))
		assert.NoError(t, err)
	})

	t.Run("subscribes to all audited event types", func(t *testing.T) {
		handler := NewLogHandler(&fakeLogRepo{}, zap.NewNop())
		types := handler.EventTypes()
		assert.Contains(t, types, catalog.EventTypeStockReserved)
		assert.Contains(t, types, catalog.EventTypeStockReleased)
		assert.Len(t, types, len(AuditedEventTypes))
	})
}
