package usecases

import (
	"context"

	"zelador/internal/application/assistance/dto"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

type ResolveTokenQuery struct {
	TokenValue string
	Action     string
}

// ResolveTokenUseCase backs the supplier landing page: it turns a presented
// link into the limited ticket view, or an AuthError. Resolving never mutates
// the request, so calling it twice without an intervening state change yields
// the same result.
type ResolveTokenUseCase struct {
	gate   *TokenGate
	logger logger.Interface
}

func NewResolveTokenUseCase(gate *TokenGate, logger logger.Interface) *ResolveTokenUseCase {
	return &ResolveTokenUseCase{
		gate:   gate,
		logger: logger,
	}
}

func (uc *ResolveTokenUseCase) Execute(ctx context.Context, query ResolveTokenQuery) (*dto.SupplierViewDTO, error) {
	action := vo.ActionView
	if len(query.Action) > 0 {
		parsed, err := vo.NewTokenAction(query.Action)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		action = parsed
	}

	resolved, _, err := uc.gate.Resolve(ctx, query.TokenValue, action)
	if err != nil {
		return nil, err
	}

	uc.logger.Debugw("token resolved",
		"assistance_id", resolved.ID(),
		"action", action.String(),
	)

	return dto.ToSupplierViewDTO(resolved), nil
}
