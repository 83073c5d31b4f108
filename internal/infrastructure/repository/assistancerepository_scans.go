package repository

import (
	"context"
	"fmt"
	"time"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/infrastructure/persistence/models"
	"zelador/internal/shared/db"
)

// Scheduler scans. All three hydrate full aggregates because the reminder
// worker needs the token set to mint or reuse validation links.

func (r *AssistanceRepository) FindScheduledBetween(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var scheduledModels []models.AssistanceModel
	if err := tx.
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			vo.StatusScheduled.String(), from.UnixMilli(), to.UnixMilli()).
		Order("scheduled_at ASC").
		Find(&scheduledModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find scheduled assistances: %w", err)
	}

	return r.hydrateAll(ctx, scheduledModels)
}

func (r *AssistanceRepository) FindScheduledBefore(ctx context.Context, cutoff time.Time) ([]*assistance.Assistance, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var overdueModels []models.AssistanceModel
	if err := tx.
		Where("status = ? AND scheduled_at < ?",
			vo.StatusScheduled.String(), cutoff.UnixMilli()).
		Order("scheduled_at ASC").
		Find(&overdueModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find overdue assistances: %w", err)
	}

	return r.hydrateAll(ctx, overdueModels)
}

func (r *AssistanceRepository) FindOpenOlderThan(ctx context.Context, openedBefore time.Time, statuses []vo.Status) ([]*assistance.Assistance, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	statusValues := make([]string, len(statuses))
	for i, s := range statuses {
		statusValues[i] = s.String()
	}

	var staleModels []models.AssistanceModel
	if err := tx.
		Where("status IN ? AND opened_at < ?", statusValues, openedBefore.UnixMilli()).
		Order("opened_at ASC").
		Find(&staleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find stale assistances: %w", err)
	}

	return r.hydrateAll(ctx, staleModels)
}

func (r *AssistanceRepository) hydrateAll(ctx context.Context, assistanceModels []models.AssistanceModel) ([]*assistance.Assistance, error) {
	result := make([]*assistance.Assistance, len(assistanceModels))
	for i := range assistanceModels {
		a, err := r.hydrate(ctx, &assistanceModels[i])
		if err != nil {
			return nil, err
		}
		result[i] = a
	}
	return result, nil
}
