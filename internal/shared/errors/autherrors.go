package errors

import (
	stderrors "errors"
	"net/http"
)

// Token-gate specific error types. Supplier requests authenticate with
// per-ticket capability tokens, so these carry no user identity.
const (
	ErrorTypeTokenNotFound       ErrorType = "token_not_found"
	ErrorTypeTokenActionMismatch ErrorType = "token_action_mismatch"
	ErrorTypeTicketClosed        ErrorType = "ticket_closed"
	ErrorTypeInvalidCredentials  ErrorType = "invalid_credentials"
	ErrorTypeTokenExpired        ErrorType = "token_expired"
	ErrorTypeTokenInvalid        ErrorType = "token_invalid"
)

// AuthError represents authentication-specific errors with security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged.
	// Some auth errors (like an unknown token) are expected noise and don't
	// need error-level logging.
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewTokenNotFoundError creates an error for a token value that resolves to
// no ticket. The message deliberately does not reveal whether the token ever
// existed.
func NewTokenNotFoundError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenNotFound,
			Message: "Invalid or expired link",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true, // track for token guessing attempts
	}
}

// NewTokenActionMismatchError creates an error for a token that exists but
// does not govern the requested action in the ticket's current state.
func NewTokenActionMismatchError(action, currentStatus string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenActionMismatch,
			Message: "This link cannot be used for the requested action",
			Code:    http.StatusUnauthorized,
			Details: "action " + action + " is not available while the request is " + currentStatus,
		},
		ShouldLog:     true,
		SecurityEvent: false,
	}
}

// NewTicketClosedError creates an error for token actions against a ticket
// already in a terminal status.
func NewTicketClosedError(currentStatus string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTicketClosed,
			Message: "This assistance request is closed",
			Code:    http.StatusUnauthorized,
			Details: "current status is " + currentStatus,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewInvalidCredentialsError creates an error for invalid admin login
// credentials. It does not reveal whether the email or password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewTokenExpiredError creates an error for expired admin JWTs
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Session has expired, please log in again",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenInvalidError creates an error for malformed or tampered admin JWTs
func NewTokenInvalidError(details ...string) *AuthError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid authentication token",
			Code:    http.StatusUnauthorized,
			Details: detail,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// IsAuthError checks if the error is an AuthError
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}
