package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
)

var (
	// ErrUserNotFound indicates no account matches the supplied username.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword indicates the account exists but the password does not match.
	ErrIncorrectPassword = errors.New("incorrect password")
)

// Authenticator turns a username/password pair into a pass/fail decision.
// Store failures fail closed: the caller sees an error, never a login.
type Authenticator struct {
	users repository.UserRepository
}

// NewAuthenticator returns an Authenticator backed by the given user repository.
func NewAuthenticator(users repository.UserRepository) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate looks up the user by case-insensitive username and verifies
// the password against the stored hash. On success it returns the user
// record; callers must not re-expose the embedded password hash.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		middleware.LoginAttempts.WithLabelValues("store_error").Inc()
		middleware.Logger.ErrorContext(ctx, "credential lookup failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("credential lookup: %w", err)
	}
	if user == nil {
		middleware.LoginAttempts.WithLabelValues("unknown_user").Inc()
		return nil, ErrUserNotFound
	}

	if !VerifyPassword(password, user.Password) {
		middleware.LoginAttempts.WithLabelValues("wrong_password").Inc()
		return nil, ErrIncorrectPassword
	}

	middleware.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}
