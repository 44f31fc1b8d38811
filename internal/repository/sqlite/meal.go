package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/diet-tracker/internal/apperror"
	"github.com/sakif/diet-tracker/internal/model"
	"github.com/sakif/diet-tracker/internal/repository"
)

// compile-time check that *DB implements repository.MealRepository
var _ repository.MealRepository = (*DB)(nil)

// mealColumns is the canonical column list shared by every SELECT below,
// so Scan calls can't drift out of order with the query.
const mealColumns = `id, user_id, name, description, day, hour, on_diet, created_at, updated_at`

// scanMeal reads one row into a model.Meal. on_diet is stored as INTEGER
// 0/1 but scans straight into a Go bool — database/sql handles the
// conversion, so the encoding never escapes this package.
func scanMeal(row interface{ Scan(...any) error }, m *model.Meal) error {
	return row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Description,
		&m.Day,
		&m.Hour,
		&m.OnDiet,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}

// Create inserts a new meal for its owner.
//
// The caller must have set meal.UserID to the authenticated user's ID —
// ownership is assigned at birth and never changes. ID and timestamps are
// generated here, and the struct is updated in place (pointer receiver) so
// the caller gets them back.
func (db *DB) Create(ctx context.Context, meal *model.Meal) error {
	meal.ID = xid.New().String()

	now := time.Now()
	meal.CreatedAt = now
	meal.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO meals (id, user_id, name, description, day, hour, on_diet, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meal.ID,
		meal.UserID,
		meal.Name,
		meal.Description,
		meal.Day,
		meal.Hour,
		meal.OnDiet,
		meal.CreatedAt,
		meal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating meal: %w", err)
	}

	return nil
}

// GetByID retrieves a single meal, but ONLY if it belongs to ownerID.
//
// THE OWNERSHIP CHECK IS IN THE SQL, NOT IN GO:
// The WHERE clause matches both id AND user_id. A meal that exists under a
// different owner produces zero rows — the exact same outcome as a meal
// that doesn't exist. That's intentional information hiding: the response
// never reveals whether someone else's meal id is real.
func (db *DB) GetByID(ctx context.Context, ownerID, id string) (*model.Meal, error) {
	var m model.Meal

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
	if err := scanMeal(row, &m); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("meal", id)
		}
		return nil, fmt.Errorf("sqlite: getting meal %s: %w", id, err)
	}

	return &m, nil
}

// ListByOwner returns every meal owned by ownerID in insertion order.
//
// ORDER BY rowid makes the insertion order explicit rather than relying on
// SQLite's unspecified default row order. The plain listing deliberately
// does NOT sort by hour — only the summary path does.
func (db *DB) ListByOwner(ctx context.Context, ownerID string) ([]model.Meal, error) {
	return db.listMeals(ctx, ownerID,
		`SELECT `+mealColumns+` FROM meals WHERE user_id = ? ORDER BY rowid`)
}

// ListByOwnerOrderedByHour returns the owner's meals sorted ascending by the
// hour column. hour is TEXT, so SQLite compares it byte-wise — plain
// lexicographic string order, never calendar-time order. "08:00" sorts
// before "12:30" because '0' < '1', not because eight comes before noon.
func (db *DB) ListByOwnerOrderedByHour(ctx context.Context, ownerID string) ([]model.Meal, error) {
	return db.listMeals(ctx, ownerID,
		`SELECT `+mealColumns+` FROM meals WHERE user_id = ? ORDER BY hour ASC`)
}

// listMeals runs one of the two list queries and collects the rows.
func (db *DB) listMeals(ctx context.Context, ownerID, query string) ([]model.Meal, error) {
	rows, err := db.conn.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing meals: %w", err)
	}
	// CRITICAL: always close rows — they hold a pool connection.
	defer rows.Close()

	meals := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		if err := scanMeal(rows, &m); err != nil {
			return nil, fmt.Errorf("sqlite: scanning meal row: %w", err)
		}
		meals = append(meals, m)
	}

	// rows.Err() catches errors that happened DURING iteration
	// (e.g. the connection dropping mid-scan).
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating meals: %w", err)
	}

	return meals, nil
}

// Update applies a partial update to one meal, owner-checked atomically.
//
// NO CHECK-THEN-WRITE GAP:
// The ownership filter (AND user_id = ?) is part of the UPDATE statement
// itself, not a separate SELECT beforehand. Even if another request deleted
// or re-owned the row between a prior read and this write, the predicate is
// re-evaluated at write time and the UPDATE simply affects zero rows.
//
// PARTIAL SEMANTICS:
// Only non-nil fields of the update appear in the SET clause. A request
// that changes just onDiet leaves name/description/day/hour untouched at
// the SQL level — we never read-modify-write the whole record.
func (db *DB) Update(ctx context.Context, ownerID, id string, update repository.MealUpdate) error {
	set := make([]string, 0, 6)
	args := make([]any, 0, 8)

	if update.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Day != nil {
		set = append(set, "day = ?")
		args = append(args, *update.Day)
	}
	if update.Hour != nil {
		set = append(set, "hour = ?")
		args = append(args, *update.Hour)
	}
	if update.OnDiet != nil {
		set = append(set, "on_diet = ?")
		args = append(args, *update.OnDiet)
	}

	// An empty update still has to confirm the meal exists and is owned by
	// the caller, so touch updated_at unconditionally.
	set = append(set, "updated_at = ?")
	args = append(args, time.Now())

	args = append(args, id, ownerID)

	// The SET clause is built only from the fixed strings above — user data
	// flows exclusively through the ? placeholders.
	result, err := db.conn.ExecContext(ctx,
		`UPDATE meals SET `+strings.Join(set, ", ")+` WHERE id = ? AND user_id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating meal %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Absent OR owned by someone else — indistinguishable on purpose.
		return apperror.NotFound("meal", id)
	}

	return nil
}

// Delete permanently removes a meal. Same atomic ownership predicate and
// RowsAffected check as Update; there is no soft delete.
func (db *DB) Delete(ctx context.Context, ownerID, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM meals WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting meal %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("meal", id)
	}

	return nil
}
