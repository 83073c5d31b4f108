package usecases

import (
	"context"
	"time"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/logger"
)

type GetAssistanceStatsQuery struct{}

type AssistanceStatsResult struct {
	ByStatus       map[string]int64 `json:"by_status"`
	ByAlertLevel   map[int]int64    `json:"by_alert_level"`
	OpenTotal      int64            `json:"open_total"`
	LateScheduled  int64            `json:"late_scheduled"`
	LateValidation int64            `json:"late_validation"`
	CriticalAlerts int64            `json:"critical_alerts"`
}

// GetAssistanceStatsUseCase backs the dashboard header: counts by status and
// alert level plus the late counts, all computed with the same shared late
// predicate the list views use.
type GetAssistanceStatsUseCase struct {
	assistanceRepo assistance.Repository
	logger         logger.Interface
}

func NewGetAssistanceStatsUseCase(assistanceRepo assistance.Repository, logger logger.Interface) *GetAssistanceStatsUseCase {
	return &GetAssistanceStatsUseCase{
		assistanceRepo: assistanceRepo,
		logger:         logger,
	}
}

func (uc *GetAssistanceStatsUseCase) Execute(ctx context.Context, _ GetAssistanceStatsQuery) (*AssistanceStatsResult, error) {
	now := time.Now()

	byStatus, err := uc.assistanceRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count by status", "error", err)
		return nil, err
	}

	byAlert, err := uc.assistanceRepo.CountByAlertLevel(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count by alert level", "error", err)
		return nil, err
	}

	var openTotal int64
	statusCounts := make(map[string]int64, len(byStatus))
	for status, count := range byStatus {
		statusCounts[status.String()] = count
		if status.IsOpen() {
			openTotal += count
		}
	}

	var criticalAlerts int64
	for level, count := range byAlert {
		if level == assistance.MaxAlertLevel {
			criticalAlerts = count
		}
	}

	// Late counts go through the shared predicate: the scans return
	// candidate supersets and the aggregate decides.
	lateScheduled, err := uc.countLateScheduled(ctx, now)
	if err != nil {
		return nil, err
	}
	lateValidation, err := uc.countLateValidation(ctx, now)
	if err != nil {
		return nil, err
	}

	return &AssistanceStatsResult{
		ByStatus:       statusCounts,
		ByAlertLevel:   byAlert,
		OpenTotal:      openTotal,
		LateScheduled:  lateScheduled,
		LateValidation: lateValidation,
		CriticalAlerts: criticalAlerts,
	}, nil
}

func (uc *GetAssistanceStatsUseCase) countLateScheduled(ctx context.Context, now time.Time) (int64, error) {
	candidates, err := uc.assistanceRepo.FindScheduledBefore(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to scan scheduled requests", "error", err)
		return 0, err
	}

	var late int64
	for _, a := range candidates {
		if a.IsLate(now) {
			late++
		}
	}
	return late, nil
}

func (uc *GetAssistanceStatsUseCase) countLateValidation(ctx context.Context, now time.Time) (int64, error) {
	// updated_at >= opened_at, so everything updated before the cutoff was
	// also opened before it; the scan returns a superset and IsLate decides.
	candidates, err := uc.assistanceRepo.FindOpenOlderThan(ctx, now.Add(-assistance.ValidationLateAfter), []vo.Status{vo.StatusPendingValidation})
	if err != nil {
		uc.logger.Errorw("failed to scan validation requests", "error", err)
		return 0, err
	}

	var late int64
	for _, a := range candidates {
		if a.IsLate(now) {
			late++
		}
	}
	return late, nil
}
