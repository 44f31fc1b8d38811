package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/diet-tracker/internal/apperror"
	"github.com/sakif/diet-tracker/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// Using ":memory:" creates a fresh database that exists only during the test.
// Fast (no disk I/O), isolated (each test gets its own database), and clean
// (destroyed when the connection closes).
//
// newTestDB is a "test helper". The t.Helper() call tells Go's test
// framework to report failures at the CALLER's line number, not inside this
// function, which makes failure output much clearer.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	// t.Cleanup registers a function to run when the test finishes.
	// Like defer, but scoped to the test — works in subtests too.
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser creates a user with the given username and token, failing
// the test on error.
func createTestUser(t *testing.T, db *DB, username, token string) *model.User {
	t.Helper()
	user := &model.User{Username: username, SessionToken: token}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Username:     "Alice",
		SessionToken: "token-alice",
	}

	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Verify the user was modified in-place (pointer receiver)
	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestCreateUser_DuplicateUsernameAllowed(t *testing.T) {
	db := newTestDB(t)

	// Usernames are display names, not identities — two accounts can share one.
	a := createTestUser(t, db, "Alice", "token-1")
	b := createTestUser(t, db, "Alice", "token-2")

	if a.ID == b.ID {
		t.Errorf("two registrations produced the same ID %q", a.ID)
	}
}

func TestCreateUser_DuplicateTokenRejected(t *testing.T) {
	db := newTestDB(t)

	createTestUser(t, db, "Alice", "same-token")

	// session_token is UNIQUE — the credential maps to exactly one user.
	dup := &model.User{Username: "Bob", SessionToken: "same-token"}
	if err := db.Create(context.Background(), dup); err == nil {
		t.Error("Create() with duplicate session token should fail")
	}
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "Alice", "token-alice")

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
	if found.Username != "Alice" {
		t.Errorf("Username = %q, want %q", found.Username, "Alice")
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), "no-such-user")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestGetBySessionToken(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "Alice", "token-alice")

	found, err := db.GetBySessionToken(context.Background(), "token-alice")
	if err != nil {
		t.Fatalf("GetBySessionToken() error = %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("resolved ID = %q, want %q", found.ID, created.ID)
	}
}

func TestGetBySessionToken_Unknown(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "Alice", "token-alice")

	// An unknown token is Unauthorized — NOT NotFound. The two outcomes stay
	// distinguishable all the way to the HTTP layer (401 vs 404).
	_, err := db.GetBySessionToken(context.Background(), "forged-token")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("GetBySessionToken() error = %v, want ErrUnauthorized", err)
	}
}

func TestGetBySessionToken_Empty(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetBySessionToken(context.Background(), "")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("GetBySessionToken(\"\") error = %v, want ErrUnauthorized", err)
	}
}
