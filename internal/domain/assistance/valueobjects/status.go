package valueobjects

import "fmt"

// Status is the lifecycle status of an assistance request. The Portuguese
// labels are the wire vocabulary used by the dashboard and the supplier
// pages, so they are preserved as the stored values.
type Status string

const (
	StatusPendingResponse   Status = "pendente_resposta"
	StatusAccepted          Status = "aceite"
	StatusScheduled         Status = "agendado"
	StatusInProgress        Status = "em_curso"
	StatusPendingValidation Status = "aguarda_validacao"
	StatusCompleted         Status = "concluido"
	StatusRejected          Status = "recusada"
	StatusCancelled         Status = "cancelada"
)

var validStatuses = map[Status]bool{
	StatusPendingResponse:   true,
	StatusAccepted:          true,
	StatusScheduled:         true,
	StatusInProgress:        true,
	StatusPendingValidation: true,
	StatusCompleted:         true,
	StatusRejected:          true,
	StatusCancelled:         true,
}

// statusTransitions is the single transition table for the whole system.
// Admin status changes and supplier token actions both validate against it;
// the only paths not listed here are the two admin escape hatches (cancel,
// reassign) which have dedicated guards.
var statusTransitions = map[Status][]Status{
	StatusPendingResponse: {
		StatusAccepted,
		StatusScheduled,
		StatusRejected,
		StatusCancelled,
	},
	StatusAccepted: {
		StatusScheduled,
		StatusCancelled,
	},
	StatusScheduled: {
		StatusScheduled, // reschedule keeps the status, replaces the datetime
		StatusInProgress,
		StatusPendingValidation,
		StatusCompleted,
		StatusCancelled,
	},
	StatusInProgress: {
		StatusPendingValidation,
		StatusCompleted,
		StatusCancelled,
	},
	StatusPendingValidation: {
		StatusCompleted,
		StatusCancelled,
	},
	StatusRejected: {
		StatusPendingResponse, // admin reassign to a new supplier
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

// CanTransitionTo reports whether the transition table allows moving from
// this status to newStatus.
func (s Status) CanTransitionTo(newStatus Status) bool {
	allowed, ok := statusTransitions[s]
	if !ok {
		return false
	}

	for _, candidate := range allowed {
		if candidate == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status closes the request. Terminal requests
// accept no further supplier token actions; recusada additionally allows the
// admin reassign escape.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// IsOpen reports whether the request still awaits supplier work.
func (s Status) IsOpen() bool {
	return s.IsValid() && !s.IsTerminal()
}

func (s Status) IsPendingResponse() bool {
	return s == StatusPendingResponse
}

func (s Status) IsAccepted() bool {
	return s == StatusAccepted
}

func (s Status) IsScheduled() bool {
	return s == StatusScheduled
}

func (s Status) IsInProgress() bool {
	return s == StatusInProgress
}

func (s Status) IsPendingValidation() bool {
	return s == StatusPendingValidation
}

func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

func (s Status) IsRejected() bool {
	return s == StatusRejected
}

func (s Status) IsCancelled() bool {
	return s == StatusCancelled
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assistance status: %s", s)
	}
	return status, nil
}
