package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/diet-tracker/internal/repository"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "userID", id), ANY package that knows the string "userID"
// can read or shadow your value. Using a package-private type prevents collisions:
// only THIS package can create a key of type contextKey, so only this package
// can read or write userID values in the context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// It reads the opaque session token from the "session" HttpOnly cookie,
// resolves it against the users table, and stores the user's ID in the
// request context. If the cookie is missing or matches no user, it returns
// 401 Unauthorized and stops the request chain — no protected handler ever
// runs for an unauthenticated request.
//
// REQUEST-SCOPED, NEVER CACHED:
// The resolved identity lives only in this request's context. Nothing is
// memoised between requests, even for the same token — two concurrent
// requests each do their own lookup and each carry their own context value,
// so one user's identity can never bleed into another request sharing the
// process.
//
// MIDDLEWARE PATTERN IN GO:
// A middleware is a function that takes an http.Handler and returns a new
// http.Handler. The new handler "wraps" the original:
//
//	func Middleware(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        // ... do stuff before the handler ...
//	        next.ServeHTTP(w, r)
//	    })
//	}
//
// Chi applies middlewares in a chain: req → M1 → M2 → Handler → M2 → M1 → resp
func RequireAuth(users repository.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)

			user, err := users.GetBySessionToken(r.Context(), token)
			if err != nil {
				// Covers both "no cookie" and "token matches no user".
				// Deliberately the same response for both — the client
				// learns only that it isn't authenticated, not why.
				logger.Debug("unauthenticated request",
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid session required"}`))
				return
			}

			// Store the resolved user's ID in the context so handlers can read it.
			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request context.
//
// Returns ("", false) if the request is anonymous (no valid session was present).
// Returns (id, true) if the user is authenticated.
//
// Usage in handlers:
//
//	userID, ok := auth.UserIDFromContext(r.Context())
//	if !ok {
//	    // should not happen behind RequireAuth, but fail closed
//	}
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// sessionToken extracts the raw token from the request's session cookie.
// A missing cookie yields "" — the repository treats that as unauthenticated.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		// http.ErrNoCookie — not an error, just an anonymous request
		return ""
	}
	return cookie.Value
}
