package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/diet-tracker/internal/apperror"
	"github.com/sakif/diet-tracker/internal/model"
	"github.com/sakif/diet-tracker/internal/repository"
)

// Validation constants.
// Day and hour have NO length or format rules on purpose: they are opaque
// strings the service stores and sorts but never interprets.
const (
	MaxMealNameLength    = 100
	MaxDescriptionLength = 1000
)

// MealUpdateParams carries a partial meal update into the service layer.
// Nil pointer = "leave this field alone" (see repository.MealUpdate for the
// pointer rationale).
type MealUpdateParams struct {
	Name        *string
	Description *string
	Day         *string
	Hour        *string
	OnDiet      *bool
}

// MealService handles business logic for meals.
//
// EVERY method takes ownerID as its first domain argument: there is no way
// to touch a meal without saying who is asking, and the repository bakes
// that ID into each query. The service never has a "get meal by id alone"
// escape hatch.
type MealService struct {
	repo   repository.MealRepository
	logger *slog.Logger
}

// NewMealService creates a MealService.
func NewMealService(repo repository.MealRepository, logger *slog.Logger) *MealService {
	return &MealService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new meal owned by ownerID.
func (s *MealService) Create(ctx context.Context, ownerID, name, description, day, hour string, onDiet bool) (*model.Meal, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "meal name is required")
	}
	if len(name) > MaxMealNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("meal name must be %d characters or less", MaxMealNameLength))
	}
	if len(description) > MaxDescriptionLength {
		return nil, apperror.ValidationFailed("description",
			fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength))
	}

	meal := &model.Meal{
		UserID:      ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Day:         day,
		Hour:        hour,
		OnDiet:      onDiet,
	}

	if err := s.repo.Create(ctx, meal); err != nil {
		s.logger.Error("failed to create meal",
			slog.String("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating meal: %w", err)
	}

	s.logger.Info("meal created",
		slog.String("id", meal.ID),
		slog.String("ownerID", ownerID),
		slog.Bool("onDiet", meal.OnDiet),
	)

	return meal, nil
}

// GetByID retrieves one of the owner's meals.
// A meal belonging to someone else comes back as NotFound — the repository
// enforces that, the service just passes it through untouched.
func (s *MealService) GetByID(ctx context.Context, ownerID, id string) (*model.Meal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "meal ID is required")
	}

	return s.repo.GetByID(ctx, ownerID, id)
}

// List returns the owner's meals in the order they were recorded.
// Listing is NOT sorted by hour — only the summary re-orders meals.
func (s *MealService) List(ctx context.Context, ownerID string) ([]model.Meal, error) {
	meals, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list meals",
			slog.String("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing meals: %w", err)
	}

	return meals, nil
}

// Update applies a partial update to one of the owner's meals.
//
// Validation only runs for fields that are actually present; nil fields are
// handed to the repository as-is and never touch the stored values. The
// ownership re-check happens inside the repository's atomic UPDATE
// predicate, so a stale id (or someone else's id) surfaces as NotFound with
// no write performed.
func (s *MealService) Update(ctx context.Context, ownerID, id string, params MealUpdateParams) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "meal ID is required")
	}

	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		if trimmed == "" {
			return apperror.ValidationFailed("name", "meal name cannot be empty")
		}
		if len(trimmed) > MaxMealNameLength {
			return apperror.ValidationFailed("name",
				fmt.Sprintf("meal name must be %d characters or less", MaxMealNameLength))
		}
		params.Name = &trimmed
	}
	if params.Description != nil && len(*params.Description) > MaxDescriptionLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength))
	}

	err := s.repo.Update(ctx, ownerID, id, repository.MealUpdate{
		Name:        params.Name,
		Description: params.Description,
		Day:         params.Day,
		Hour:        params.Hour,
		OnDiet:      params.OnDiet,
	})
	if err != nil {
		return err
	}

	s.logger.Info("meal updated",
		slog.String("id", id),
		slog.String("ownerID", ownerID),
	)
	return nil
}

// Delete permanently removes one of the owner's meals.
func (s *MealService) Delete(ctx context.Context, ownerID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "meal ID is required")
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info("meal deleted",
		slog.String("id", id),
		slog.String("ownerID", ownerID),
	)
	return nil
}

// Summary computes the owner's dietary-adherence report.
//
// The meals are fetched already ordered ascending by hour (lexicographic on
// the raw string — see the repository), because the "best sequence" is
// defined over meals in time-of-day order, not in the order they were
// recorded.
//
// An owner with no meals gets NotFound, not an all-zero summary: "you have
// recorded nothing" is a distinct outcome from "you recorded meals and none
// were on diet".
func (s *MealService) Summary(ctx context.Context, ownerID string) (*model.Summary, error) {
	meals, err := s.repo.ListByOwnerOrderedByHour(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to load meals for summary",
			slog.String("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("loading meals for summary: %w", err)
	}

	if len(meals) == 0 {
		return nil, apperror.NotFoundMessage("No meals found")
	}

	return summarize(meals), nil
}

// summarize reduces an ordered meal sequence to its Summary.
//
// THE LONGEST-RUN SCAN:
// One pass, two counters. `current` counts the on-diet run we're inside
// right now; it grows by one on every on-diet meal and snaps back to zero
// the moment an off-diet meal appears. `best` remembers the highest value
// `current` ever reached. O(n) time, O(1) space — the classic
// maximum-consecutive-run scan.
//
// Note OnDiet and OutDiet are counted in the same pass; total is just the
// slice length, so Total == OnDiet + OutDiet always holds.
func summarize(meals []model.Meal) *model.Summary {
	sum := &model.Summary{
		Total: len(meals),
	}

	current := 0
	for _, meal := range meals {
		if meal.OnDiet {
			sum.OnDiet++
			current++
			if current > sum.BestMealSequence {
				sum.BestMealSequence = current
			}
		} else {
			sum.OutDiet++
			current = 0
		}
	}

	return sum
}
