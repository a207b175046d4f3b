package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/audit"
	"github.com/shop/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAuditLogRepository implements audit.LogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Save appends an audit entry. Events can be redelivered, so a duplicate
// event ID is ignored rather than treated as an error.
func (r *GormAuditLogRepository) Save(ctx context.Context, entry *audit.LogEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(entry).Error
}

// FindByAggregate returns entries for one aggregate, newest first
func (r *GormAuditLogRepository) FindByAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, filter shared.Filter) ([]audit.LogEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&audit.LogEntry{}).
		Where("aggregate_type = ? AND aggregate_id = ?", aggregateType, aggregateID)
	return r.list(query, filter)
}

// FindAll returns entries matching the filter, newest first
func (r *GormAuditLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.LogEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&audit.LogEntry{})
	if filter.Search != "" {
		query = query.Where("event_type = ?", filter.Search)
	}
	return r.list(query, filter)
}

func (r *GormAuditLogRepository) list(query *gorm.DB, filter shared.Filter) ([]audit.LogEntry, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var entries []audit.LogEntry
	if err := query.Order("occurred_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Ensure GormAuditLogRepository implements LogRepository
var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
