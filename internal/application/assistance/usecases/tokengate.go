package usecases

import (
	"context"
	stderrors "errors"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

// TokenGate resolves a presented token value to its assistance request and
// authorizes one action against it. It re-validates the current status at
// action time, not just token existence: a token may be presented after the
// request has moved to a status where that action is no longer legal.
type TokenGate struct {
	repo   assistance.Repository
	logger logger.Interface
}

func NewTokenGate(repo assistance.Repository, logger logger.Interface) *TokenGate {
	return &TokenGate{
		repo:   repo,
		logger: logger,
	}
}

// Resolve maps a token value to its request and checks that the token's
// purpose governs the requested action in the current status. The error is
// always an AuthError; callers on the unauthenticated path must not leak
// anything beyond it.
func (g *TokenGate) Resolve(ctx context.Context, tokenValue string, action vo.TokenAction) (*assistance.Assistance, *assistance.Token, error) {
	if len(tokenValue) == 0 {
		return nil, nil, errors.NewTokenNotFoundError()
	}
	if !action.IsValid() {
		return nil, nil, errors.NewTokenNotFoundError()
	}

	a, token, err := g.repo.GetByTokenValue(ctx, tokenValue)
	if err != nil {
		if stderrors.Is(err, assistance.ErrTokenNotFound) || stderrors.Is(err, assistance.ErrNotFound) {
			g.logger.Warnw("token resolution failed", "action", action.String())
			return nil, nil, errors.NewTokenNotFoundError()
		}
		g.logger.Errorw("token lookup failed", "error", err)
		return nil, nil, err
	}

	if !token.IsActive() {
		// A consumed token stops resolving immediately; no grace period.
		return nil, nil, errors.NewTokenNotFoundError()
	}

	if token.Purpose() != action.Purpose() {
		g.logger.Warnw("token purpose does not govern action",
			"assistance_id", a.ID(),
			"token_purpose", token.Purpose().String(),
			"action", action.String(),
		)
		return nil, nil, errors.NewTokenActionMismatchError(action.String(), a.Status().String())
	}

	if action != vo.ActionView && a.Status().IsTerminal() {
		return nil, nil, errors.NewTicketClosedError(a.Status().String())
	}

	if !action.AllowedFrom(a.Status()) {
		return nil, nil, errors.NewTokenActionMismatchError(action.String(), a.Status().String())
	}

	return a, token, nil
}
