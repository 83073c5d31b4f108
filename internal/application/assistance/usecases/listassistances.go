package usecases

import (
	"context"
	"time"

	"zelador/internal/application/assistance/dto"
	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
	"zelador/internal/shared/utils"
)

type ListAssistancesQuery struct {
	Status             string
	Urgency            string
	BuildingID         *uint
	SupplierID         *uint
	InterventionTypeID *uint
	MinAlertLevel      *int
	OnlyLate           bool
	Page               int
	PageSize           int
	SortBy             string
	SortOrder          string
}

type ListAssistancesResult struct {
	Items    []dto.AssistanceListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListAssistancesUseCase struct {
	assistanceRepo assistance.Repository
	logger         logger.Interface
}

func NewListAssistancesUseCase(assistanceRepo assistance.Repository, logger logger.Interface) *ListAssistancesUseCase {
	return &ListAssistancesUseCase{
		assistanceRepo: assistanceRepo,
		logger:         logger,
	}
}

func (uc *ListAssistancesUseCase) Execute(ctx context.Context, query ListAssistancesQuery) (*ListAssistancesResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	filter := assistance.Filter{
		BuildingID:         query.BuildingID,
		SupplierID:         query.SupplierID,
		InterventionTypeID: query.InterventionTypeID,
		MinAlertLevel:      query.MinAlertLevel,
		Page:               pagination.Page,
		PageSize:           pagination.PageSize,
		SortBy:             query.SortBy,
		SortOrder:          query.SortOrder,
	}

	if len(query.Status) > 0 {
		status, err := vo.NewStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if len(query.Urgency) > 0 {
		urgency, err := vo.NewUrgency(query.Urgency)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Urgency = &urgency
	}

	items, total, err := uc.assistanceRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list assistances", "error", err)
		return nil, err
	}

	now := time.Now()
	if query.OnlyLate {
		// The late predicate is derived, not stored, so the filter is applied
		// after the scan with the single shared predicate.
		late := make([]*assistance.Assistance, 0, len(items))
		for _, item := range items {
			if item.IsLate(now) {
				late = append(late, item)
			}
		}
		items = late
		total = int64(len(late))
	}

	return &ListAssistancesResult{
		Items:    dto.ToAssistanceListItemDTOs(items, now),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
