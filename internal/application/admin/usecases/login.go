// Package usecases implements administrator authentication. Suppliers never
// log in; they act through capability tokens on the public surface.
package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"zelador/internal/domain/admin"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

// TokenIssuer mints the bearer token returned after a successful login.
type TokenIssuer interface {
	Issue(userID uint, email string) (token string, expiresAt time.Time, err error)
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    uint
	Name      string
	Email     string
}

type LoginUseCase struct {
	users  admin.Repository
	issuer TokenIssuer
	logger logger.Interface
}

func NewLoginUseCase(users admin.Repository, issuer TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{users: users, issuer: issuer, logger: logger}
}

// Execute verifies the credentials and issues a bearer token. Unknown email
// and wrong password produce the same unauthorized error so the endpoint
// does not leak which accounts exist.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	user, err := uc.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if stderrors.Is(err, admin.ErrNotFound) {
			uc.logger.Warnw("login attempt for unknown email", "email", cmd.Email)
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		uc.logger.Errorw("failed to load admin user", "error", err)
		return nil, errors.NewInternalError("failed to authenticate", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(cmd.Password)); err != nil {
		uc.logger.Warnw("login attempt with wrong password", "user_id", user.ID())
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	token, expiresAt, err := uc.issuer.Issue(user.ID(), user.Email())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", user.ID(), "error", err)
		return nil, errors.NewInternalError("failed to authenticate", err.Error())
	}

	uc.logger.Infow("admin logged in", "user_id", user.ID())
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID(),
		Name:      user.Name(),
		Email:     user.Email(),
	}, nil
}
