package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
)

func newChangeStatusUseCase(repo *mockAssistanceRepository, activity *mockActivityLogRepository) *ChangeStatusUseCase {
	return NewChangeStatusUseCase(repo, activity, &mockTransactionManager{}, &mockLogger{})
}

func repoWith(a *assistance.Assistance) *mockAssistanceRepository {
	return &mockAssistanceRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*assistance.Assistance, error) {
			if id == a.ID() {
				return a, nil
			}
			return nil, assistance.ErrNotFound
		},
	}
}

func TestChangeStatusUseCase_Execute_ValidTransition(t *testing.T) {
	a := testAssistance(t, vo.StatusScheduled)
	activity := &mockActivityLogRepository{}
	useCase := newChangeStatusUseCase(repoWith(a), activity)

	result, err := useCase.Execute(context.Background(), ChangeStatusCommand{
		AssistanceID: a.ID(),
		NewStatus:    vo.StatusInProgress.String(),
		Notes:        "supplier confirmed by phone",
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress.String(), result.Status)
	require.Len(t, activity.appended, 1)
	assert.Contains(t, activity.appended[0].Description(), "supplier confirmed by phone")
}

func TestChangeStatusUseCase_Execute_EscapeHatchesRefused(t *testing.T) {
	// Cancel and reassign have dedicated operations; the generic path must
	// refuse their target statuses.
	tests := []struct {
		name      string
		newStatus vo.Status
	}{
		{"cancel through generic path", vo.StatusCancelled},
		{"reassign through generic path", vo.StatusPendingResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAssistance(t, vo.StatusScheduled)
			useCase := newChangeStatusUseCase(repoWith(a), &mockActivityLogRepository{})

			_, err := useCase.Execute(context.Background(), ChangeStatusCommand{
				AssistanceID: a.ID(),
				NewStatus:    tt.newStatus.String(),
			})

			require.Error(t, err)
			assert.True(t, errors.IsInvalidTransitionError(err))
			assert.Equal(t, vo.StatusScheduled, a.Status())
		})
	}
}

func TestChangeStatusUseCase_Execute_InvalidTransition(t *testing.T) {
	a := testAssistance(t, vo.StatusPendingResponse)
	useCase := newChangeStatusUseCase(repoWith(a), &mockActivityLogRepository{})

	_, err := useCase.Execute(context.Background(), ChangeStatusCommand{
		AssistanceID: a.ID(),
		NewStatus:    vo.StatusInProgress.String(),
	})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidTransitionError(err))
	assert.Contains(t, err.Error(), vo.StatusPendingResponse.String())
	assert.Contains(t, err.Error(), vo.StatusInProgress.String())
	assert.Equal(t, vo.StatusPendingResponse, a.Status())
}

func TestChangeStatusUseCase_Execute_ScheduledNeedsDatetime(t *testing.T) {
	a := testAssistance(t, vo.StatusAccepted)
	useCase := newChangeStatusUseCase(repoWith(a), &mockActivityLogRepository{})

	t.Run("without datetime", func(t *testing.T) {
		_, err := useCase.Execute(context.Background(), ChangeStatusCommand{
			AssistanceID: a.ID(),
			NewStatus:    vo.StatusScheduled.String(),
		})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("with datetime", func(t *testing.T) {
		datetime := time.Now().Add(24 * time.Hour)
		result, err := useCase.Execute(context.Background(), ChangeStatusCommand{
			AssistanceID: a.ID(),
			NewStatus:    vo.StatusScheduled.String(),
			ScheduledAt:  &datetime,
		})

		require.NoError(t, err)
		assert.Equal(t, vo.StatusScheduled.String(), result.Status)
	})
}

func TestChangeStatusUseCase_Execute_CompletionNeedsPhotos(t *testing.T) {
	a := testAssistance(t, vo.StatusPendingValidation)
	useCase := newChangeStatusUseCase(repoWith(a), &mockActivityLogRepository{})

	_, err := useCase.Execute(context.Background(), ChangeStatusCommand{
		AssistanceID: a.ID(),
		NewStatus:    vo.StatusCompleted.String(),
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "photo evidence")
	assert.Equal(t, vo.StatusPendingValidation, a.Status())
}

func TestChangeStatusUseCase_Execute_SameStatusIsNoOp(t *testing.T) {
	a := testAssistance(t, vo.StatusAccepted)
	activity := &mockActivityLogRepository{}
	repo := repoWith(a)
	updateCalled := false
	repo.UpdateFunc = func(ctx context.Context, ua *assistance.Assistance) error {
		updateCalled = true
		return nil
	}
	useCase := newChangeStatusUseCase(repo, activity)

	result, err := useCase.Execute(context.Background(), ChangeStatusCommand{
		AssistanceID: a.ID(),
		NewStatus:    vo.StatusAccepted.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusAccepted.String(), result.Status)
	assert.False(t, updateCalled)
	assert.Empty(t, activity.appended)
}

func TestChangeStatusUseCase_Execute_NotFound(t *testing.T) {
	useCase := newChangeStatusUseCase(&mockAssistanceRepository{}, &mockActivityLogRepository{})

	_, err := useCase.Execute(context.Background(), ChangeStatusCommand{
		AssistanceID: 404,
		NewStatus:    vo.StatusAccepted.String(),
	})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
