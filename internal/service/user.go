// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Handlers only know about HTTP. Services only know about business rules.
// Neither knows about SQL. Each service takes its repository as an INTERFACE,
// so tests can inject an in-memory mock and production wires in SQLite.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/diet-tracker/internal/apperror"
	"github.com/sakif/diet-tracker/internal/auth"
	"github.com/sakif/diet-tracker/internal/model"
	"github.com/sakif/diet-tracker/internal/repository"
)

// MaxUsernameLength bounds the display name. There is no uniqueness rule —
// usernames are labels, not identities. The session token is the identity.
const MaxUsernameLength = 100

// UserService handles registration and identity lookups.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// Register creates a new account and issues its session token.
//
// This is the ONLY path that creates a credential: the token is generated
// here, persisted on the users row, and returned exactly once so the
// handler can set the cookie. After this, the token is never rotated,
// refreshed or re-sent — losing the cookie means registering again.
func (s *UserService) Register(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}

	user := &model.User{
		Username:     username,
		SessionToken: auth.NewSessionToken(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("failed to register user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// GetByID returns the user record for an already-authenticated identity.
// Backs the whoami endpoint — the handler gets the ID from the request
// context (set by the auth middleware) and fetches the full record here.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}
