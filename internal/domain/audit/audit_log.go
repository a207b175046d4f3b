package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// LogEntry is one audit record for a dispatched domain event. Entries are
// append-only; they exist so every stock mutation and cart change has a
// durable trail attributed to an actor.
type LogEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EventType     string    `gorm:"type:varchar(100);not null;index"`
	OccurredAt    time.Time `gorm:"not null;index"`
	ActorID       uuid.UUID `gorm:"type:uuid;not null;index"`
	AggregateType string    `gorm:"type:varchar(50);not null"`
	AggregateID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Payload       string    `gorm:"type:jsonb"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (LogEntry) TableName() string {
	return "audit_logs"
}

// NewLogEntryFromEvent builds an audit entry from a domain event. The event
// itself is the source of the aggregate reference; no separate mapping
// table exists to drift from the event definitions.
func NewLogEntryFromEvent(event shared.DomainEvent) (*LogEntry, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &LogEntry{
		ID:            uuid.New(),
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		OccurredAt:    event.OccurredAt(),
		ActorID:       event.ActorID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		Payload:       string(payload),
		CreatedAt:     time.Now().UTC(),
	}, nil
}
