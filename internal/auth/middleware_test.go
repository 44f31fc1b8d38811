package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sakif/diet-tracker/internal/apperror"
	"github.com/sakif/diet-tracker/internal/model"
)

// tokenUserRepo resolves a fixed token map. Only GetBySessionToken matters
// for the middleware; the other methods just satisfy the interface.
type tokenUserRepo struct {
	byToken map[string]*model.User
}

func (r *tokenUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (r *tokenUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	return nil, apperror.NotFound("user", id)
}

func (r *tokenUserRepo) GetBySessionToken(_ context.Context, token string) (*model.User, error) {
	if u, ok := r.byToken[token]; ok && token != "" {
		return u, nil
	}
	return nil, apperror.Unauthorized("valid session required")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// echoUserID is the protected handler under test: it writes back whatever
// user ID the middleware put in the context.
func echoUserID(t *testing.T, gotUserID *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("handler ran without a user ID in context")
		}
		*gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	repo := &tokenUserRepo{byToken: map[string]*model.User{
		"good-token": {ID: "user-1", Username: "Alice", SessionToken: "good-token"},
	}}

	var gotUserID string
	handler := RequireAuth(repo, testLogger())(echoUserID(t, &gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-token"})
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if gotUserID != "user-1" {
		t.Errorf("context user ID = %q, want %q", gotUserID, "user-1")
	}
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	repo := &tokenUserRepo{byToken: map[string]*model.User{}}

	handlerRan := false
	handler := RequireAuth(repo, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if handlerRan {
		t.Error("protected handler ran for an unauthenticated request")
	}
}

func TestRequireAuth_UnknownToken(t *testing.T) {
	repo := &tokenUserRepo{byToken: map[string]*model.User{
		"good-token": {ID: "user-1"},
	}}

	handlerRan := false
	handler := RequireAuth(repo, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if handlerRan {
		t.Error("protected handler ran with an unknown token")
	}
}

func TestRequireAuth_IdentityIsRequestScoped(t *testing.T) {
	// Two different tokens through the SAME middleware instance must each
	// see their own identity: nothing may stick between requests.
	repo := &tokenUserRepo{byToken: map[string]*model.User{
		"token-a": {ID: "user-a"},
		"token-b": {ID: "user-b"},
	}}

	var gotUserID string
	handler := RequireAuth(repo, testLogger())(echoUserID(t, &gotUserID))

	for token, wantID := range map[string]string{"token-a": "user-a", "token-b": "user-b"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if gotUserID != wantID {
			t.Errorf("token %q resolved to %q, want %q", token, gotUserID, wantID)
		}
	}
}

func TestUserIDFromContext_Absent(t *testing.T) {
	if id, ok := UserIDFromContext(context.Background()); ok || id != "" {
		t.Errorf("UserIDFromContext on empty context = (%q, %v), want (\"\", false)", id, ok)
	}
}

func TestNewSessionToken_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := NewSessionToken()
		if token == "" {
			t.Fatal("NewSessionToken() returned empty string")
		}
		if seen[token] {
			t.Fatalf("NewSessionToken() produced a duplicate: %s", token)
		}
		seen[token] = true
	}
}
