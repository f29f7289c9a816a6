// Package auth holds the sign-in collaborator used to gate the profile endpoints.
// The quiz core never depends on it.
package auth

import (
	"context"
	"errors"
	"time"

	"driving-quiz-service/internal/domain"
)

// Authenticator issues and checks sign-in tokens.
type Authenticator interface {
	Signup(ctx context.Context, form SignupForm) (Session, error)
	Login(ctx context.Context, form LoginForm) (Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (domain.User, error)
	IsAuthenticated(ctx context.Context, token string) bool
	UpdateUser(ctx context.Context, token string, form ProfileForm) (domain.User, error)
}

// Storage is the JSON key-value store the mock authenticator keeps users and tokens in.
// Get reports false when the key does not exist.
type Storage interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dst any) (bool, error)
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

// Session is the result of a successful login or signup.
type Session struct {
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type SignupForm struct {
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"omitempty,username"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	PersonalNumber  string `json:"personalNumber" validate:"omitempty,numeric"`
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileForm struct {
	Name           string `json:"name" validate:"required"`
	Username       string `json:"username" validate:"omitempty,username"`
	Email          string `json:"email" validate:"required,email"`
	PersonalNumber string `json:"personalNumber" validate:"omitempty,numeric"`
	Avatar         string `json:"avatar" validate:"omitempty,url"`
}

// AsValidation returns the form validation error wrapped in err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
