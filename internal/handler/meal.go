package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/diet-tracker/internal/auth"
	"github.com/sakif/diet-tracker/internal/service"
)

// MealHandler manages CRUD and the summary endpoint for meals.
//
// Every route here sits behind auth.RequireAuth, so the handler can assume
// a user ID is in the context. It still checks — failing closed costs one
// if-statement.
type MealHandler struct {
	meals  *service.MealService
	logger *slog.Logger
}

// NewMealHandler creates a MealHandler.
func NewMealHandler(meals *service.MealService, logger *slog.Logger) *MealHandler {
	return &MealHandler{
		meals:  meals,
		logger: logger,
	}
}

// ownerID pulls the authenticated user out of the request context.
// Returns false (after writing a 401) if it's somehow absent.
func (h *MealHandler) ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid session required",
		})
		return "", false
	}
	return userID, true
}

// createMealRequest is the expected body for POST /api/meals.
//
// WHY POINTER FIELDS?
// With plain fields, {"onDiet": false} and a body that omits onDiet decode
// to the same struct — false. Pointers keep "absent" (nil) distinguishable
// from a zero value, so we can reject bodies missing a required field
// instead of silently defaulting it.
type createMealRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Day         *string `json:"day"`
	Hour        *string `json:"hour"`
	OnDiet      *bool   `json:"onDiet"`
}

// updateMealRequest is the expected body for PUT /api/meals/{id}.
// Every field is optional; only present fields are changed.
type updateMealRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Day         *string `json:"day"`
	Hour        *string `json:"hour"`
	OnDiet      *bool   `json:"onDiet"`
}

// HandleList returns all of the caller's meals, in the order they were recorded.
//
// HTTP: GET /api/meals
// RESPONSE: 200 {"meals": [...]}
func (h *MealHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	meals, err := h.meals.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meals": meals})
}

// HandleGetByID returns a single meal owned by the caller.
//
// HTTP: GET /api/meals/{id}
// RESPONSE: 200 {"meal": {...}} or 404 — including when the id exists but
// belongs to another user. The two cases are indistinguishable by design.
func (h *MealHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	meal, err := h.meals.GetByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meal": meal})
}

// HandleCreate records a new meal for the caller.
//
// HTTP: POST /api/meals
// REQUEST BODY: {"name","description","day","hour","onDiet"} — all required
// RESPONSE: 201 {"id": "<meal id>"}
//
// day and hour are accepted verbatim: any string is a valid day or hour.
// They're sortable labels, not parsed timestamps.
func (h *MealHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	var req createMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid meal JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	if req.Name == nil || req.Description == nil || req.Day == nil || req.Hour == nil || req.OnDiet == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "name, description, day, hour and onDiet are required",
		})
		return
	}

	meal, err := h.meals.Create(r.Context(), userID,
		*req.Name, *req.Description, *req.Day, *req.Hour, *req.OnDiet)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": meal.ID})
}

// HandleUpdate partially updates one of the caller's meals.
//
// HTTP: PUT /api/meals/{id}
// REQUEST BODY: any subset of {"name","description","day","hour","onDiet"}
// RESPONSE: 204 on success, 404 if absent or not owned.
func (h *MealHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	var req updateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid meal JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	err := h.meals.Update(r.Context(), userID, chi.URLParam(r, "id"), service.MealUpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Day:         req.Day,
		Hour:        req.Hour,
		OnDiet:      req.OnDiet,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete permanently removes one of the caller's meals.
//
// HTTP: DELETE /api/meals/{id}
// RESPONSE: 204 on success, 404 if absent or not owned.
func (h *MealHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	if err := h.meals.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary returns the caller's dietary-adherence report.
//
// HTTP: GET /api/meals/summary
// RESPONSE: 200 {"total","onDiet","outDiet","bestMealSequence"}
// or 404 if the caller has recorded no meals at all.
func (h *MealHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	summary, err := h.meals.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
