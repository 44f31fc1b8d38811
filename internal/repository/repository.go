package repository

import (
	"context"

	"github.com/sakif/diet-tracker/internal/model"
)

// UserRepository persists registered users and resolves session tokens.
//
// GetBySessionToken is the heart of authentication: a request's cookie value
// is matched by equality against users.session_token. No match means the
// request is unauthenticated — the repository reports that as
// apperror.Unauthorized so the middleware can short-circuit with a 401.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetBySessionToken(ctx context.Context, token string) (*model.User, error)
}

// MealUpdate carries a partial meal update. Nil fields are left unchanged.
//
// WHY POINTERS?
// A plain string can't distinguish "not provided" from "set to empty".
// *string can: nil = don't touch, &"" = clear the field. Same idea for
// *bool — onDiet:false is a meaningful update, so bool alone wouldn't do.
type MealUpdate struct {
	Name        *string
	Description *string
	Day         *string
	Hour        *string
	OnDiet      *bool
}

// MealRepository is ownership-scoped CRUD over meals.
//
// Every method takes the owner's user ID and folds it into the query
// predicate. A meal that exists under a DIFFERENT owner is reported exactly
// like a meal that doesn't exist at all (apperror.NotFound) — callers can
// never learn whether someone else's meal id is real.
type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	GetByID(ctx context.Context, ownerID, id string) (*model.Meal, error)

	// ListByOwner returns the owner's meals in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Meal, error)

	// ListByOwnerOrderedByHour returns the owner's meals ordered ascending
	// by the hour string (lexicographic — hour is never parsed as a time).
	// This ordering feeds the adherence summary and nothing else.
	ListByOwnerOrderedByHour(ctx context.Context, ownerID string) ([]model.Meal, error)

	Update(ctx context.Context, ownerID, id string, update MealUpdate) error
	Delete(ctx context.Context, ownerID, id string) error
}
