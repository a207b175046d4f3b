package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// LogRepository defines the persistence port for audit log entries
type LogRepository interface {
	// Save appends an audit entry
	Save(ctx context.Context, entry *LogEntry) error

	// FindByAggregate returns entries for one aggregate, newest first
	FindByAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, filter shared.Filter) ([]LogEntry, int64, error)

	// FindAll returns entries matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]LogEntry, int64, error)
}
