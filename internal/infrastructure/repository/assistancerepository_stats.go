package repository

import (
	"context"
	"fmt"

	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/infrastructure/persistence/models"
	"zelador/internal/shared/db"
)

func (r *AssistanceRepository) CountByStatus(ctx context.Context) (map[vo.Status]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		Status string
		Count  int64
	}
	if err := tx.
		Model(&models.AssistanceModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[vo.Status]int64, len(rows))
	for _, row := range rows {
		status, err := vo.NewStatus(row.Status)
		if err != nil {
			return nil, err
		}
		counts[status] = row.Count
	}
	return counts, nil
}

func (r *AssistanceRepository) CountByAlertLevel(ctx context.Context) (map[int]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		AlertLevel int
		Count      int64
	}
	if err := tx.
		Model(&models.AssistanceModel{}).
		Select("alert_level, COUNT(*) as count").
		Group("alert_level").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count by alert level: %w", err)
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.AlertLevel] = row.Count
	}
	return counts, nil
}
