package assistance

import (
	"context"
	"time"

	vo "zelador/internal/domain/assistance/valueobjects"
)

// Repository persists the Assistance aggregate. Update is an optimistic
// compare-and-swap on the version column and returns ErrVersionConflict when
// the row changed concurrently; handlers re-read and report a conflict
// instead of clobbering the other writer.
type Repository interface {
	Save(ctx context.Context, a *Assistance) error
	Update(ctx context.Context, a *Assistance) error
	GetByID(ctx context.Context, id uint) (*Assistance, error)
	// GetByTokenValue resolves an active token value to its aggregate and
	// the matched token. Backed by a unique index; this sits on the
	// unauthenticated request path.
	GetByTokenValue(ctx context.Context, value string) (*Assistance, *Token, error)
	List(ctx context.Context, filter Filter) ([]*Assistance, int64, error)
	// DeleteCascade removes the request and all dependent rows (tokens,
	// photos, activity log, email log) in one transaction. Returns
	// ErrNotFound when the id does not exist.
	DeleteCascade(ctx context.Context, id uint) error

	// Scheduler scans. Each returns open requests only.
	FindScheduledBetween(ctx context.Context, from, to time.Time) ([]*Assistance, error)
	FindScheduledBefore(ctx context.Context, cutoff time.Time) ([]*Assistance, error)
	FindOpenOlderThan(ctx context.Context, openedBefore time.Time, statuses []vo.Status) ([]*Assistance, error)

	SaveToken(ctx context.Context, t *Token) error
	UpdateToken(ctx context.Context, t *Token) error

	SavePhoto(ctx context.Context, p *Photo) error
	FindPhotosByAssistanceID(ctx context.Context, assistanceID uint) ([]*Photo, error)

	CountByStatus(ctx context.Context) (map[vo.Status]int64, error)
	CountByAlertLevel(ctx context.Context) (map[int]int64, error)
}

// Filter narrows List queries.
type Filter struct {
	Status             *vo.Status
	Urgency            *vo.Urgency
	BuildingID         *uint
	SupplierID         *uint
	InterventionTypeID *uint
	MinAlertLevel      *int
	Page               int
	PageSize           int
	SortBy             string
	SortOrder          string
}

// ActivityLogRepository is append-only; entries disappear only through the
// aggregate cascade delete.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *ActivityLogEntry) error
	FindByAssistanceID(ctx context.Context, assistanceID uint) ([]*ActivityLogEntry, error)
}

// EmailLogRepository is append-only.
type EmailLogRepository interface {
	Append(ctx context.Context, entry *EmailLogEntry) error
	FindByAssistanceID(ctx context.Context, assistanceID uint) ([]*EmailLogEntry, error)
}
