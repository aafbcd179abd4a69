package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bus-booking-api/internal/model"
	"bus-booking-api/internal/session"
	"bus-booking-api/pkg/apierror"
)

const bcryptCost = 10

// The same message is returned for an unknown username and a wrong
// password so login responses cannot be used to enumerate accounts.
const invalidCredentialsMessage = "Invalid username or password"

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u model.User) error
}

type AuthService struct {
	users      UserStore
	sessions   session.Store
	sessionTTL time.Duration
}

func NewAuthService(users UserStore, sessions session.Store, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}

	return &AuthService{users: users, sessions: sessions, sessionTTL: sessionTTL}
}

// Register creates the user and opens a session for it. Duplicates are
// rejected by the store's unique constraint, not by a racy pre-check.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (model.User, *session.Session, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return model.User{}, nil, apierror.BadRequest("Username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.User{}, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.NormalizeRole(strings.ToLower(strings.TrimSpace(role))),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.User{}, nil, apierror.Conflict("User already exists")
		}
		return model.User{}, nil, err
	}

	sess, err := s.startSession(ctx, user)
	if err != nil {
		return model.User{}, nil, err
	}

	return user, sess, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (model.User, *session.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, nil, apierror.Unauthenticated(invalidCredentialsMessage)
	}
	if err != nil {
		return model.User{}, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, nil, apierror.Unauthenticated(invalidCredentialsMessage)
	}

	sess, err := s.startSession(ctx, user)
	if err != nil {
		return model.User{}, nil, err
	}

	return user, sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *AuthService) startSession(ctx context.Context, user model.User) (*session.Session, error) {
	id, err := session.GenerateID()
	if err != nil {
		return nil, err
	}

	sess := session.Session{
		ID:        id,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &sess, nil
}
