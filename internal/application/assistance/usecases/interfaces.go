package usecases

import (
	"context"

	"zelador/internal/application/assistance/dto"
	"zelador/internal/domain/assistance"
)

// TokenGenerator produces opaque capability token values from a
// cryptographically secure source.
type TokenGenerator interface {
	Generate() (string, error)
}

// Notifier sends the lifecycle emails. Implementations record every attempt
// in the email log; callers treat send failures as best-effort and never let
// them roll back the state change that triggered the notification.
type Notifier interface {
	RequestCreated(ctx context.Context, a *assistance.Assistance) error
	RequestAccepted(ctx context.Context, a *assistance.Assistance) error
	RequestRejected(ctx context.Context, a *assistance.Assistance) error
	RequestScheduled(ctx context.Context, a *assistance.Assistance, rescheduled bool) error
	RequestCompleted(ctx context.Context, a *assistance.Assistance) error
	RequestCancelled(ctx context.Context, a *assistance.Assistance) error
	RequestReassigned(ctx context.Context, a *assistance.Assistance) error
	SameDayReminder(ctx context.Context, a *assistance.Assistance) error
	FollowUpReminder(ctx context.Context, a *assistance.Assistance) error
	EscalationAlert(ctx context.Context, a *assistance.Assistance, level int) error
}

// StoredPhoto describes one persisted upload.
type StoredPhoto struct {
	Path        string
	ContentType string
	SizeBytes   int64
}

// PhotoStorage validates and stores completion evidence uploads. Store
// rejects payloads over the configured size limit or outside the accepted
// image types.
type PhotoStorage interface {
	Store(ctx context.Context, assistanceID uint, filename string, data []byte) (*StoredPhoto, error)
}

type CreateAssistanceExecutor interface {
	Execute(ctx context.Context, cmd CreateAssistanceCommand) (*CreateAssistanceResult, error)
}

type GetAssistanceExecutor interface {
	Execute(ctx context.Context, query GetAssistanceQuery) (*dto.AssistanceDTO, error)
}

type ListAssistancesExecutor interface {
	Execute(ctx context.Context, query ListAssistancesQuery) (*ListAssistancesResult, error)
}

type UpdateAssistanceExecutor interface {
	Execute(ctx context.Context, cmd UpdateAssistanceCommand) (*UpdateAssistanceResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type CancelAssistanceExecutor interface {
	Execute(ctx context.Context, cmd CancelAssistanceCommand) (*CancelAssistanceResult, error)
}

type ReassignAssistanceExecutor interface {
	Execute(ctx context.Context, cmd ReassignAssistanceCommand) (*ReassignAssistanceResult, error)
}

type DeleteAssistanceExecutor interface {
	Execute(ctx context.Context, cmd DeleteAssistanceCommand) (*DeleteAssistanceResult, error)
}

type RegenerateTokenExecutor interface {
	Execute(ctx context.Context, cmd RegenerateTokenCommand) (*RegenerateTokenResult, error)
}

type GetAssistanceStatsExecutor interface {
	Execute(ctx context.Context, query GetAssistanceStatsQuery) (*AssistanceStatsResult, error)
}

type ListActivityLogExecutor interface {
	Execute(ctx context.Context, query ListActivityLogQuery) ([]dto.ActivityLogEntryDTO, error)
}

type ResolveTokenExecutor interface {
	Execute(ctx context.Context, query ResolveTokenQuery) (*dto.SupplierViewDTO, error)
}

type AcceptAssistanceExecutor interface {
	Execute(ctx context.Context, cmd AcceptAssistanceCommand) (*dto.SupplierViewDTO, error)
}

type RejectAssistanceExecutor interface {
	Execute(ctx context.Context, cmd RejectAssistanceCommand) (*dto.SupplierViewDTO, error)
}

type ScheduleAssistanceExecutor interface {
	Execute(ctx context.Context, cmd ScheduleAssistanceCommand) (*dto.SupplierViewDTO, error)
}

type CompleteAssistanceExecutor interface {
	Execute(ctx context.Context, cmd CompleteAssistanceCommand) (*dto.SupplierViewDTO, error)
}
