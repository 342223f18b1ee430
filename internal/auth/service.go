package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	"github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/internal/repository"
	"github.com/gkrishna247/lendit-p2p-market/utils"

	"github.com/go-playground/validator/v10"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
)

// RegisterInput is a sign-up request
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Session is the result of a successful login
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

// Service registers accounts and issues, verifies and revokes session tokens
type Service struct {
	users    repository.UserStore
	tokens   *TokenIssuer
	revoked  RevocationStore
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates an auth Service
func NewService(users repository.UserStore, tokens *TokenIssuer, revoked RevocationStore) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		revoked:  revoked,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Register validates input and stores a new account with a hashed password
func (s *Service) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if err := s.validateRegistration(input); err != nil {
		return models.User{}, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		UserID:       utils.GenerateID(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("auth: failed to register %s: %w", input.Username, err)
	}
	return user, nil
}

func (s *Service) validateRegistration(input RegisterInput) error {
	switch {
	case input.Username == "":
		return fmt.Errorf("auth: %w - username is required", marketerrors.ErrInvalidRegistration)
	case utf8.RuneCountInString(input.Username) > maxUsernameLength:
		return fmt.Errorf("auth: %w - username longer than %d characters", marketerrors.ErrInvalidRegistration, maxUsernameLength)
	case s.validate.Var(input.Email, "required,email") != nil:
		return fmt.Errorf("auth: %w - a valid email is required", marketerrors.ErrInvalidRegistration)
	case utf8.RuneCountInString(input.Password) < minPasswordLength:
		return fmt.Errorf("auth: %w - password must contain at least %d characters", marketerrors.ErrInvalidRegistration, minPasswordLength)
	case isNumeric(input.Password):
		return fmt.Errorf("auth: %w - password is entirely numeric", marketerrors.ErrInvalidRegistration)
	case strings.EqualFold(input.Password, input.Username):
		return fmt.Errorf("auth: %w - password is too similar to the username", marketerrors.ErrInvalidRegistration)
	case input.Password != input.PasswordConfirm:
		return fmt.Errorf("auth: %w - the two password fields didn't match", marketerrors.ErrInvalidRegistration)
	}
	return nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// Login checks credentials and issues a session token
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, marketerrors.ErrUserNotFound) {
			return Session{}, fmt.Errorf("auth: %w - unknown user %q", marketerrors.ErrInvalidCredentials, username)
		}
		return Session{}, fmt.Errorf("auth: failed to load user %q: %w", username, err)
	}
	if !CheckPassword(user.PasswordHash, password) {
		return Session{}, fmt.Errorf("auth: %w - wrong password for %q", marketerrors.ErrInvalidCredentials, username)
	}

	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Authenticate resolves a session token to the acting user
func (s *Service) Authenticate(ctx context.Context, token string) (models.Actor, error) {
	claims, err := s.parseLive(ctx, token)
	if err != nil {
		return models.Actor{}, err
	}
	return models.Actor{UserID: claims.Subject, Username: claims.Username}, nil
}

// Logout revokes token until its expiry. It reports false when the token was not a live session.
func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	claims, err := s.parseLive(ctx, token)
	if err != nil {
		if errors.Is(err, marketerrors.ErrUnauthenticated) {
			return false, nil
		}
		return false, err
	}
	if err := s.revoke(ctx, claims); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAccount removes the actor's account with everything it owns and ends the session token
func (s *Service) DeleteAccount(ctx context.Context, actor models.Actor, token string) error {
	if actor.UserID == "" {
		return fmt.Errorf("auth: %w - missing actor", marketerrors.ErrUnauthenticated)
	}
	if err := s.users.DeleteUser(ctx, actor.UserID); err != nil {
		return fmt.Errorf("auth: failed to delete user %s: %w", actor.UserID, err)
	}

	if claims, err := s.tokens.Parse(token); err == nil {
		if err := s.revoke(ctx, claims); err != nil {
			utils.Warn("DeleteAccount: failed to revoke session", map[string]any{"user_id": actor.UserID, "error": err.Error()})
		}
	}
	return nil
}

// parseLive verifies token and rejects revoked sessions and deleted accounts
func (s *Service) parseLive(ctx context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, fmt.Errorf("auth: %w - missing token", marketerrors.ErrUnauthenticated)
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Claims{}, fmt.Errorf("auth: %w - %v", marketerrors.ErrUnauthenticated, err)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Claims{}, err
	}
	if revoked {
		return Claims{}, fmt.Errorf("auth: %w - token revoked", marketerrors.ErrUnauthenticated)
	}

	if _, err := s.users.GetUser(ctx, claims.Subject); err != nil {
		if errors.Is(err, marketerrors.ErrUserNotFound) {
			return Claims{}, fmt.Errorf("auth: %w - account no longer exists", marketerrors.ErrUnauthenticated)
		}
		return Claims{}, err
	}
	return claims, nil
}

func (s *Service) revoke(ctx context.Context, claims Claims) error {
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time.Sub(s.now()))
}
