package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
)

func newReassignUseCase(repo *mockAssistanceRepository, suppliers *mockSupplierRepository, activity *mockActivityLogRepository, notifier *mockNotifier) *ReassignAssistanceUseCase {
	return NewReassignAssistanceUseCase(
		repo,
		suppliers,
		activity,
		&mockTokenGenerator{},
		&mockTransactionManager{},
		notifier,
		&mockLogger{},
	)
}

func TestReassignAssistanceUseCase_Execute_Success(t *testing.T) {
	a := testAssistance(t, vo.StatusRejected)
	oldInteraction := withToken(t, a, vo.PurposeInteraction)
	oldAcceptance := withToken(t, a, vo.PurposeAcceptance)

	repo := repoWith(a)
	savedTokens := make([]*assistance.Token, 0, 2)
	repo.SaveTokenFunc = func(ctx context.Context, tok *assistance.Token) error {
		savedTokens = append(savedTokens, tok)
		return nil
	}

	notifier := &mockNotifier{}
	activity := &mockActivityLogRepository{}
	useCase := newReassignUseCase(repo, &mockSupplierRepository{}, activity, notifier)

	result, err := useCase.Execute(context.Background(), ReassignAssistanceCommand{
		AssistanceID:  a.ID(),
		NewSupplierID: 9,
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPendingResponse.String(), result.Status)
	assert.Equal(t, uint(9), result.SupplierID)
	assert.NotEmpty(t, result.InteractionToken)

	// The whole old token set stops resolving; a fresh set is issued.
	assert.False(t, oldInteraction.IsActive())
	assert.False(t, oldAcceptance.IsActive())
	require.Len(t, savedTokens, 2)
	assert.NotEqual(t, oldInteraction.Value(), savedTokens[0].Value())

	assert.Empty(t, a.RejectionReason())
	assert.Nil(t, a.ScheduledAt())
	assert.Nil(t, a.ClosedAt())
	assert.Equal(t, 0, a.AlertLevel())

	require.Len(t, activity.appended, 1)
	assert.Equal(t, []string{"reassigned"}, notifier.sent)
}

func TestReassignAssistanceUseCase_Execute_OnlyFromRejected(t *testing.T) {
	for _, status := range []vo.Status{vo.StatusPendingResponse, vo.StatusScheduled, vo.StatusCompleted} {
		t.Run(status.String(), func(t *testing.T) {
			a := testAssistance(t, status)
			useCase := newReassignUseCase(repoWith(a), &mockSupplierRepository{}, &mockActivityLogRepository{}, &mockNotifier{})

			_, err := useCase.Execute(context.Background(), ReassignAssistanceCommand{
				AssistanceID:  a.ID(),
				NewSupplierID: 9,
			})

			require.Error(t, err)
			assert.True(t, errors.IsInvalidTransitionError(err))
			assert.Equal(t, status, a.Status())
		})
	}
}
