// Package handler contains the HTTP layer: request parsing, response
// encoding, and nothing else. Business rules live in internal/service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/diet-tracker/internal/auth"
	"github.com/sakif/diet-tracker/internal/service"
)

// UserHandler manages registration and the whoami endpoint.
type UserHandler struct {
	users *service.UserService

	// cookieMaxAge is how long (seconds) the browser keeps the session
	// cookie. Configured in one place and injected, like everything else.
	cookieMaxAge int

	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, cookieMaxAge int, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:        users,
		cookieMaxAge: cookieMaxAge,
		logger:       logger,
	}
}

// registerRequest is the expected body for POST /api/user.
type registerRequest struct {
	Username string `json:"username"`
}

// HandleRegister creates an account and sets the session cookie.
//
// HTTP: POST /api/user
// REQUEST BODY: {"username": "Alice"}
// RESPONSE: 201 {"id": "<user id>"}  + Set-Cookie: session=<token>
//
// COOKIE FLAGS:
//   - HttpOnly: JavaScript cannot read the cookie, so an XSS bug can't
//     exfiltrate the token.
//   - SameSite=Lax: the browser won't attach it to cross-site POSTs.
//   - Path=/: sent on every route, including /api/meals.
//
// The token itself is NOT in the response body — the cookie is its only
// delivery channel.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	user, err := h.users.Register(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    user.SessionToken,
		Path:     "/",
		MaxAge:   h.cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // Uncomment in production (requires HTTPS)
	})

	writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID})
}

// HandleMe returns the currently authenticated user's record.
//
// HTTP: GET /api/user
// Auth: Required (RequireAuth middleware sets the user ID in context)
//
// The response never includes the session token (model.User tags it
// json:"-"): the caller already holds the credential in its cookie jar and
// has no reason to see it again.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid session required",
		})
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("whoami: user lookup failed", slog.String("userID", userID))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
