package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/diet-tracker/internal/apperror"
	"github.com/sakif/diet-tracker/internal/model"
)

// mockUserRepo is an in-memory repository.UserRepository.
type mockUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetBySessionToken(_ context.Context, token string) (*model.User, error) {
	for _, user := range m.users {
		if token != "" && user.SessionToken == token {
			result := *user
			return &result, nil
		}
	}
	return nil, apperror.Unauthorized("valid session required")
}

func newTestUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewUserService(repo, logger), repo
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Register(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("expected user to have an ID")
	}
	if user.Username != "Alice" {
		t.Errorf("Username = %q, want %q", user.Username, "Alice")
	}
	if user.SessionToken == "" {
		t.Error("expected a session token to be issued")
	}
}

func TestRegister_TrimsWhitespace(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Register(context.Background(), "  Alice  ")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Username != "Alice" {
		t.Errorf("Username = %q, want trimmed %q", user.Username, "Alice")
	}
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "   ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Register() error = %v, want ErrValidation", err)
	}
}

func TestRegister_DistinctTokens(t *testing.T) {
	svc, _ := newTestUserService(t)

	// Even two registrations under the SAME username are independent
	// identities with their own credentials.
	a, err := svc.Register(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	b, err := svc.Register(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if a.SessionToken == b.SessionToken {
		t.Error("two registrations produced the same session token")
	}
	if a.ID == b.ID {
		t.Error("two registrations produced the same ID")
	}
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestUserService(t)

	created, _ := svc.Register(context.Background(), "Alice")

	found, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Username != "Alice" {
		t.Errorf("Username = %q, want %q", found.Username, "Alice")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.GetByID(context.Background(), "no-such-user")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}
