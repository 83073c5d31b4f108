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

type EmailLogRepository struct {
	db     *gorm.DB
	mapper mappers.EmailLogMapper
}

func NewEmailLogRepository(db *gorm.DB) *EmailLogRepository {
	return &EmailLogRepository{
		db:     db,
		mapper: mappers.NewEmailLogMapper(),
	}
}

func (r *EmailLogRepository) Append(ctx context.Context, entry *assistance.EmailLogEntry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append email log entry: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *EmailLogRepository) FindByAssistanceID(ctx context.Context, assistanceID uint) ([]*assistance.EmailLogEntry, error) {
	var entryModels []models.EmailLogEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("assistance_id = ?", assistanceID).
		Order("created_at ASC, id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find email log entries: %w", err)
	}

	entries := make([]*assistance.EmailLogEntry, len(entryModels))
	for i := range entryModels {
		entry, err := r.mapper.ToDomain(&entryModels[i])
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}
	return entries, nil
}
