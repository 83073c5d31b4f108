package usecases

import (
	stderrors "errors"

	"zelador/internal/domain/assistance"
	"zelador/internal/shared/errors"
)

// mapDomainError translates domain failures into the application error
// taxonomy so handlers can explain every rejection.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	var ite *assistance.InvalidTransitionError
	switch {
	case stderrors.As(err, &ite):
		return errors.NewInvalidTransitionError(ite.From.String(), ite.To.String())
	case stderrors.Is(err, assistance.ErrVersionConflict):
		return errors.NewConflictError("the request was modified concurrently, please retry")
	case stderrors.Is(err, assistance.ErrNotFound):
		return errors.NewNotFoundError("assistance request not found")
	default:
		return err
	}
}
