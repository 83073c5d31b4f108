package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"zelador/internal/domain/assistance"
	"zelador/internal/infrastructure/persistence/mappers"
	"zelador/internal/infrastructure/persistence/models"
	"zelador/internal/shared/db"
)

type ActivityLogRepository struct {
	db     *gorm.DB
	mapper mappers.ActivityLogMapper
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{
		db:     db,
		mapper: mappers.NewActivityLogMapper(),
	}
}

func (r *ActivityLogRepository) Append(ctx context.Context, entry *assistance.ActivityLogEntry) error {
	model := r.mapper.ToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append activity log entry: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *ActivityLogRepository) FindByAssistanceID(ctx context.Context, assistanceID uint) ([]*assistance.ActivityLogEntry, error) {
	var entryModels []models.ActivityLogEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("assistance_id = ?", assistanceID).
		Order("created_at ASC, id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find activity log entries: %w", err)
	}

	entries := make([]*assistance.ActivityLogEntry, len(entryModels))
	for i := range entryModels {
		entry, err := r.mapper.ToDomain(&entryModels[i])
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}
	return entries, nil
}
