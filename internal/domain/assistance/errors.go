package assistance

import (
	"errors"
	"fmt"

	vo "zelador/internal/domain/assistance/valueobjects"
)

// InvalidTransitionError reports an attempt to move a request from a status
// to one the transition table does not allow. It names both sides so the
// caller can explain the rejection instead of a generic failure.
type InvalidTransitionError struct {
	From vo.Status
	To   vo.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %q to %q", e.From, e.To)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("assistance not found")

// ErrVersionConflict is returned when an optimistic-concurrency update
// matched no row: the request changed under the caller between read and
// write.
var ErrVersionConflict = errors.New("assistance was modified concurrently")

// ErrTokenNotFound is returned by the token lookup when no active token has
// the given value.
var ErrTokenNotFound = errors.New("token not found")
