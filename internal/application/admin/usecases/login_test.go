package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"zelador/internal/domain/admin"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

type mockAdminRepository struct {
	GetByEmailFunc func(ctx context.Context, email string) (*admin.User, error)
}

func (m *mockAdminRepository) Save(ctx context.Context, u *admin.User) error { return nil }

func (m *mockAdminRepository) GetByID(ctx context.Context, id uint) (*admin.User, error) {
	return nil, admin.ErrNotFound
}

func (m *mockAdminRepository) GetByEmail(ctx context.Context, email string) (*admin.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, admin.ErrNotFound
}

func (m *mockAdminRepository) ListEmails(ctx context.Context) ([]string, error) {
	return nil, nil
}

type mockTokenIssuer struct {
	IssueFunc func(userID uint, email string) (string, time.Time, error)
}

func (m *mockTokenIssuer) Issue(userID uint, email string) (string, time.Time, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, email)
	}
	return "signed.jwt.token", time.Now().Add(time.Hour), nil
}

func adminUser(t *testing.T, password string) *admin.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return admin.ReconstructUser(1, "Gestora", "gestao@example.com", string(hash), time.Now(), time.Now())
}

func TestLoginUseCase_Execute_Success(t *testing.T) {
	user := adminUser(t, "correct-horse")
	repo := &mockAdminRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*admin.User, error) {
			return user, nil
		},
	}
	useCase := NewLoginUseCase(repo, &mockTokenIssuer{}, logger.NewNop())

	result, err := useCase.Execute(context.Background(), LoginCommand{
		Email:    "gestao@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", result.Token)
	assert.Equal(t, uint(1), result.UserID)
	assert.Equal(t, "gestao@example.com", result.Email)
}

func TestLoginUseCase_Execute_WrongPassword(t *testing.T) {
	user := adminUser(t, "correct-horse")
	repo := &mockAdminRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*admin.User, error) {
			return user, nil
		},
	}
	useCase := NewLoginUseCase(repo, &mockTokenIssuer{}, logger.NewNop())

	_, err := useCase.Execute(context.Background(), LoginCommand{
		Email:    "gestao@example.com",
		Password: "battery-staple",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
}

func TestLoginUseCase_Execute_UnknownEmailSameError(t *testing.T) {
	useCase := NewLoginUseCase(&mockAdminRepository{}, &mockTokenIssuer{}, logger.NewNop())

	_, err := useCase.Execute(context.Background(), LoginCommand{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "invalid credentials", appErr.Message)
}

func TestLoginUseCase_Execute_RequiresCredentials(t *testing.T) {
	useCase := NewLoginUseCase(&mockAdminRepository{}, &mockTokenIssuer{}, logger.NewNop())

	_, err := useCase.Execute(context.Background(), LoginCommand{Email: "gestao@example.com"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
