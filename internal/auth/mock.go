package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"driving-quiz-service/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	userPrefix  = "auth:user:"
	emailPrefix = "auth:email:"
	tokenPrefix = "auth:token:"

	DefaultAvatar = "https://images.unsplash.com/photo-1633332755192-727a05c4013d?q=80&w=250&auto=format&fit=crop"
)

// MockAuthenticator accepts any well-formed credentials. Login for an unknown email creates the
// user on the fly; passwords are validated for shape but never stored.
type MockAuthenticator struct {
	store    Storage
	tokenTTL time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewMockAuthenticator(store Storage, tokenTTL time.Duration, log *zap.Logger) *MockAuthenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &MockAuthenticator{store: store, tokenTTL: tokenTTL, now: time.Now, log: log}
}

func (a *MockAuthenticator) Signup(ctx context.Context, form SignupForm) (Session, error) {
	if err := validateForm(form); err != nil {
		return Session{}, err
	}
	email := normalizeEmail(form.Email)
	if err := a.claimEmail(ctx, email, ""); err != nil {
		return Session{}, err
	}
	username := form.Username
	if username == "" {
		username = usernameFor(email, form.Name)
	}
	user := domain.User{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(form.Name),
		Email:          email,
		Username:       username,
		PersonalNumber: form.PersonalNumber,
		Avatar:         DefaultAvatar,
	}
	if err := a.saveUser(ctx, user); err != nil {
		return Session{}, err
	}
	a.log.Info("user signed up", zap.String("user_id", user.ID))
	return a.issue(ctx, user)
}

func (a *MockAuthenticator) Login(ctx context.Context, form LoginForm) (Session, error) {
	if err := validateForm(form); err != nil {
		return Session{}, err
	}
	email := normalizeEmail(form.Email)

	user, found, err := a.userByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if !found {
		user = domain.User{
			ID:       uuid.NewString(),
			Name:     usernameFor(email, ""),
			Email:    email,
			Username: usernameFor(email, ""),
			Avatar:   DefaultAvatar,
		}
		if err := a.saveUser(ctx, user); err != nil {
			return Session{}, err
		}
	}
	a.log.Info("user logged in", zap.String("user_id", user.ID), zap.Bool("created", !found))
	return a.issue(ctx, user)
}

// Logout drops the token. Unknown tokens are ignored.
func (a *MockAuthenticator) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.store.Remove(ctx, tokenPrefix+token)
}

func (a *MockAuthenticator) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	var userID string
	ok, err := a.store.Get(ctx, tokenPrefix+token, &userID)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, domain.ErrUnauthenticated
	}
	var user domain.User
	ok, err = a.store.Get(ctx, userPrefix+userID, &user)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return user, nil
}

func (a *MockAuthenticator) IsAuthenticated(ctx context.Context, token string) bool {
	_, err := a.CurrentUser(ctx, token)
	return err == nil
}

func (a *MockAuthenticator) UpdateUser(ctx context.Context, token string, form ProfileForm) (domain.User, error) {
	user, err := a.CurrentUser(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	if err := validateForm(form); err != nil {
		return domain.User{}, err
	}
	oldEmail := user.Email
	user.Name = strings.TrimSpace(form.Name)
	user.Email = normalizeEmail(form.Email)
	user.PersonalNumber = form.PersonalNumber
	if form.Username != "" {
		user.Username = form.Username
	}
	if form.Avatar != "" {
		user.Avatar = form.Avatar
	}
	if oldEmail != user.Email {
		if err := a.claimEmail(ctx, user.Email, user.ID); err != nil {
			return domain.User{}, err
		}
		if err := a.store.Remove(ctx, emailPrefix+oldEmail); err != nil {
			return domain.User{}, err
		}
	}
	if err := a.saveUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (a *MockAuthenticator) issue(ctx context.Context, user domain.User) (Session, error) {
	token := uuid.NewString()
	if err := a.store.Set(ctx, tokenPrefix+token, user.ID, a.tokenTTL); err != nil {
		return Session{}, fmt.Errorf("store token: %w", err)
	}
	var expires time.Time
	if a.tokenTTL > 0 {
		expires = a.now().Add(a.tokenTTL)
	}
	return Session{Token: token, User: user, ExpiresAt: expires}, nil
}

func (a *MockAuthenticator) saveUser(ctx context.Context, user domain.User) error {
	if err := a.store.Set(ctx, userPrefix+user.ID, user, 0); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	if err := a.store.Set(ctx, emailPrefix+user.Email, user.ID, 0); err != nil {
		return fmt.Errorf("store user email: %w", err)
	}
	return nil
}

func (a *MockAuthenticator) userByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	var userID string
	ok, err := a.store.Get(ctx, emailPrefix+email, &userID)
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	var user domain.User
	ok, err = a.store.Get(ctx, userPrefix+userID, &user)
	return user, ok, err
}

// claimEmail fails with ErrEmailTaken when email is indexed to an account other than userID.
func (a *MockAuthenticator) claimEmail(ctx context.Context, email, userID string) error {
	owner, found, err := a.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	if found && owner.ID != userID {
		return domain.ErrEmailTaken
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// usernameFor derives a username from the email's local part, or from the name without spaces.
func usernameFor(email, name string) string {
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
