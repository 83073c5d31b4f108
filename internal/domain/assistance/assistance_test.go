package assistance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "zelador/internal/domain/assistance/valueobjects"
)

func newTestAssistance(t *testing.T, status vo.Status) *Assistance {
	t.Helper()

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	a, err := ReconstructAssistance(
		1, 10, 20, nil,
		status,
		vo.UrgencyNormal,
		"Water leak in garage ceiling",
		"",
		nil, "", "",
		0, 0, nil,
		1,
		now, now, nil,
	)
	require.NoError(t, err)
	return a
}

func TestNewAssistance(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		buildingID  uint
		supplierID  uint
		urgency     vo.Urgency
		description string
		wantErr     string
	}{
		{"valid", 1, 2, vo.UrgencyNormal, "Broken elevator", ""},
		{"missing building", 0, 2, vo.UrgencyNormal, "Broken elevator", "building ID is required"},
		{"missing supplier", 1, 0, vo.UrgencyNormal, "Broken elevator", "supplier ID is required"},
		{"invalid urgency", 1, 2, vo.Urgency("alta"), "Broken elevator", "invalid urgency"},
		{"missing description", 1, 2, vo.UrgencyUrgent, "", "description is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAssistance(tt.buildingID, tt.supplierID, nil, tt.urgency, tt.description, now)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, vo.StatusPendingResponse, a.Status())
			assert.Equal(t, 1, a.Version())
			assert.Equal(t, 0, a.AlertLevel())
			assert.Nil(t, a.ClosedAt())
		})
	}
}

func TestAssistance_Accept(t *testing.T) {
	now := time.Now()

	a := newTestAssistance(t, vo.StatusPendingResponse)
	require.NoError(t, a.Accept(now))
	assert.Equal(t, vo.StatusAccepted, a.Status())
	assert.Equal(t, 2, a.Version())

	// Accepting twice is an invalid transition and leaves the status alone.
	err := a.Accept(now)
	require.Error(t, err)
	assert.True(t, IsInvalidTransition(err))
	assert.Equal(t, vo.StatusAccepted, a.Status())
	assert.Equal(t, 2, a.Version())
}

func TestAssistance_Reject(t *testing.T) {
	now := time.Now()

	t.Run("requires a reason", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		err := a.Reject("", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reason is required")
		assert.Equal(t, vo.StatusPendingResponse, a.Status())
	})

	t.Run("records reason and closes", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		require.NoError(t, a.Reject("No availability this month", now))
		assert.Equal(t, vo.StatusRejected, a.Status())
		assert.Equal(t, "No availability this month", a.RejectionReason())
		assert.NotNil(t, a.ClosedAt())
	})

	t.Run("cannot reject after acceptance", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusAccepted)
		err := a.Reject("too late", now)
		assert.True(t, IsInvalidTransition(err))
	})
}

func TestAssistance_Schedule(t *testing.T) {
	now := time.Now()
	future := now.Add(48 * time.Hour)

	t.Run("rejects past datetime", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusAccepted)
		err := a.Schedule(now.Add(-time.Hour), "", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be in the future")
		assert.Equal(t, vo.StatusAccepted, a.Status())
	})

	t.Run("schedules from accepted", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusAccepted)
		require.NoError(t, a.Schedule(future, "", now))
		assert.Equal(t, vo.StatusScheduled, a.Status())
		require.NotNil(t, a.ScheduledAt())
		assert.Equal(t, future.UTC(), *a.ScheduledAt())
		assert.Empty(t, a.RescheduleReason())
	})

	t.Run("schedules directly from pending via acceptance", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		require.NoError(t, a.Schedule(future, "", now))
		assert.Equal(t, vo.StatusScheduled, a.Status())
	})

	t.Run("reschedule keeps status and records reason", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		require.NoError(t, a.Schedule(future, "Supplier asked to move the visit", now))
		assert.Equal(t, vo.StatusScheduled, a.Status())
		assert.Equal(t, "Supplier asked to move the visit", a.RescheduleReason())
	})

	t.Run("reschedule resets the reminder cycle", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		a.MarkValidationEmailSent(now)
		a.RecordFollowUpReminder(now)

		require.NoError(t, a.Schedule(future, "moved", now))
		assert.Nil(t, a.ValidationEmailSentAt())
		assert.Equal(t, 0, a.ValidationReminderCount())
	})
}

func TestAssistance_Complete(t *testing.T) {
	now := time.Now()

	t.Run("requires photo evidence", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		err := a.Complete(now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "photo evidence is required")
		assert.Equal(t, vo.StatusScheduled, a.Status())
	})

	t.Run("completes with photo and resets alert level", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		require.NoError(t, a.EscalateAlert(1, now))
		a.AttachPhoto()

		require.NoError(t, a.Complete(now))
		assert.Equal(t, vo.StatusCompleted, a.Status())
		assert.Equal(t, 0, a.AlertLevel())
		assert.NotNil(t, a.ClosedAt())
	})

	t.Run("cannot complete a pending request", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		a.AttachPhoto()
		err := a.Complete(now)
		assert.True(t, IsInvalidTransition(err))
	})
}

func TestAssistance_CancelByAdmin(t *testing.T) {
	now := time.Now()

	for _, status := range []vo.Status{
		vo.StatusPendingResponse,
		vo.StatusAccepted,
		vo.StatusScheduled,
		vo.StatusInProgress,
		vo.StatusPendingValidation,
	} {
		t.Run("cancels from "+status.String(), func(t *testing.T) {
			a := newTestAssistance(t, status)
			require.NoError(t, a.CancelByAdmin(now))
			assert.Equal(t, vo.StatusCancelled, a.Status())
			assert.NotNil(t, a.ClosedAt())
		})
	}

	for _, status := range []vo.Status{vo.StatusCompleted, vo.StatusRejected, vo.StatusCancelled} {
		t.Run("cannot cancel terminal "+status.String(), func(t *testing.T) {
			a := newTestAssistance(t, status)
			err := a.CancelByAdmin(now)
			assert.True(t, IsInvalidTransition(err))
		})
	}
}

func TestAssistance_ReassignTo(t *testing.T) {
	now := time.Now()

	t.Run("only from rejected", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		err := a.ReassignTo(99, now)
		assert.True(t, IsInvalidTransition(err))
	})

	t.Run("restarts the lifecycle", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		require.NoError(t, a.Reject("wrong trade", now))

		require.NoError(t, a.ReassignTo(99, now))
		assert.Equal(t, vo.StatusPendingResponse, a.Status())
		assert.Equal(t, uint(99), a.SupplierID())
		assert.Empty(t, a.RejectionReason())
		assert.Equal(t, 0, a.AlertLevel())
		assert.Nil(t, a.ScheduledAt())
		assert.Nil(t, a.ClosedAt())
	})
}

func TestAssistance_ChangeStatusTo(t *testing.T) {
	now := time.Now()

	t.Run("admin cannot cancel through the generic path", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		err := a.ChangeStatusTo(vo.StatusCancelled, now)
		assert.True(t, IsInvalidTransition(err))
	})

	t.Run("admin cannot reassign through the generic path", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		require.NoError(t, a.Reject("busy", now))
		err := a.ChangeStatusTo(vo.StatusPendingResponse, now)
		assert.True(t, IsInvalidTransition(err))
	})

	t.Run("scheduled requires a datetime", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusAccepted)
		err := a.ChangeStatusTo(vo.StatusScheduled, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheduled datetime")
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusAccepted)
		version := a.Version()
		require.NoError(t, a.ChangeStatusTo(vo.StatusAccepted, now))
		assert.Equal(t, version, a.Version())
	})

	t.Run("valid transition", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		require.NoError(t, a.ChangeStatusTo(vo.StatusInProgress, now))
		assert.Equal(t, vo.StatusInProgress, a.Status())
	})
}

func TestAssistance_EscalateAlert(t *testing.T) {
	now := time.Now()

	t.Run("moves one level at a time", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)

		require.NoError(t, a.EscalateAlert(1, now))
		assert.Equal(t, 1, a.AlertLevel())

		// Skipping a level is refused.
		err := a.EscalateAlert(3, now)
		require.Error(t, err)
		assert.Equal(t, 1, a.AlertLevel())

		require.NoError(t, a.EscalateAlert(2, now))
		require.NoError(t, a.EscalateAlert(3, now))
		assert.Equal(t, 3, a.AlertLevel())

		// Never beyond the maximum.
		err = a.EscalateAlert(4, now)
		require.Error(t, err)
		assert.Equal(t, 3, a.AlertLevel())
	})

	t.Run("never decreases", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		require.NoError(t, a.EscalateAlert(1, now))
		err := a.EscalateAlert(1, now)
		require.Error(t, err)
		assert.Equal(t, 1, a.AlertLevel())
	})

	t.Run("refused on closed requests", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusCompleted)
		err := a.EscalateAlert(1, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "closed")
	})
}

func TestAssistance_IsLate(t *testing.T) {
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("scheduled 25h past the agreed datetime", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		scheduled := base
		aWithSchedule, err := ReconstructAssistance(
			a.ID(), a.BuildingID(), a.SupplierID(), nil,
			vo.StatusScheduled, vo.UrgencyNormal,
			a.Description(), "",
			&scheduled, "", "",
			0, 0, nil, 1, base, base, nil,
		)
		require.NoError(t, err)

		assert.False(t, aWithSchedule.IsLate(base.Add(23*time.Hour)))
		assert.False(t, aWithSchedule.IsLate(base.Add(24*time.Hour)))
		assert.True(t, aWithSchedule.IsLate(base.Add(25*time.Hour)))
	})

	t.Run("pending validation 48h after last update", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingValidation)
		assert.False(t, a.IsLate(base.Add(47*time.Hour)))
		assert.True(t, a.IsLate(base.Add(49*time.Hour)))
	})

	t.Run("closed requests are never late", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusCompleted)
		assert.False(t, a.IsLate(base.Add(1000*time.Hour)))
	})

	t.Run("scheduled without datetime is not late", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusScheduled)
		assert.False(t, a.IsLate(base.Add(1000*time.Hour)))
	})
}

func TestAssistance_Tokens(t *testing.T) {
	now := time.Now()
	value1 := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa11111111"
	value2 := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb22222222"

	t.Run("issue and lookup", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		issued, replaced, err := a.IssueToken(vo.PurposeAcceptance, value1, now)
		require.NoError(t, err)
		assert.Nil(t, replaced)
		assert.True(t, issued.IsActive())

		got := a.TokenFor(vo.PurposeAcceptance)
		require.NotNil(t, got)
		assert.Equal(t, value1, got.Value())
	})

	t.Run("reissue consumes the predecessor immediately", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		first, _, err := a.IssueToken(vo.PurposeScheduling, value1, now)
		require.NoError(t, err)

		second, replaced, err := a.IssueToken(vo.PurposeScheduling, value2, now)
		require.NoError(t, err)
		require.NotNil(t, replaced)
		assert.Same(t, first, replaced)
		assert.False(t, first.IsActive())
		assert.True(t, second.IsActive())
		assert.Equal(t, value2, a.TokenFor(vo.PurposeScheduling).Value())
	})

	t.Run("short values are refused", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		_, _, err := a.IssueToken(vo.PurposeValidation, "short", now)
		require.Error(t, err)
	})

	t.Run("revoke all", func(t *testing.T) {
		a := newTestAssistance(t, vo.StatusPendingResponse)
		_, _, err := a.IssueToken(vo.PurposeInteraction, value1, now)
		require.NoError(t, err)
		_, _, err = a.IssueToken(vo.PurposeAcceptance, value2, now)
		require.NoError(t, err)

		revoked := a.RevokeAllTokens(now)
		assert.Len(t, revoked, 2)
		assert.Nil(t, a.TokenFor(vo.PurposeInteraction))
		assert.Nil(t, a.TokenFor(vo.PurposeAcceptance))
	})
}
