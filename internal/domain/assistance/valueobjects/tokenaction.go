package valueobjects

import "fmt"

// TokenAction is a supplier-facing action requested through a token link.
// Each action is governed by exactly one token purpose and is only legal
// while the request sits in specific statuses; the gate re-validates the
// status at action time because a token may be presented after the request
// has since moved on.
type TokenAction string

const (
	ActionView     TokenAction = "view"
	ActionAccept   TokenAction = "accept"
	ActionReject   TokenAction = "reject"
	ActionSchedule TokenAction = "schedule"
	ActionComplete TokenAction = "complete"
)

var validTokenActions = map[TokenAction]bool{
	ActionView:     true,
	ActionAccept:   true,
	ActionReject:   true,
	ActionSchedule: true,
	ActionComplete: true,
}

var actionPurposes = map[TokenAction]TokenPurpose{
	ActionView:     PurposeInteraction,
	ActionAccept:   PurposeAcceptance,
	ActionReject:   PurposeAcceptance,
	ActionSchedule: PurposeScheduling,
	ActionComplete: PurposeValidation,
}

// actionStatuses lists the statuses in which each mutating action is legal.
// ActionView is absent: viewing is allowed in every status, including
// terminal ones.
var actionStatuses = map[TokenAction][]Status{
	ActionAccept:   {StatusPendingResponse},
	ActionReject:   {StatusPendingResponse},
	ActionSchedule: {StatusAccepted, StatusScheduled},
	ActionComplete: {StatusScheduled, StatusInProgress, StatusPendingValidation},
}

func (a TokenAction) String() string {
	return string(a)
}

func (a TokenAction) IsValid() bool {
	return validTokenActions[a]
}

// Purpose returns the token purpose that governs this action.
func (a TokenAction) Purpose() TokenPurpose {
	return actionPurposes[a]
}

// AllowedFrom reports whether the action is legal while the request is in
// the given status.
func (a TokenAction) AllowedFrom(s Status) bool {
	if a == ActionView {
		return s.IsValid()
	}

	for _, allowed := range actionStatuses[a] {
		if allowed == s {
			return true
		}
	}
	return false
}

func NewTokenAction(s string) (TokenAction, error) {
	a := TokenAction(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid token action: %s", s)
	}
	return a, nil
}
