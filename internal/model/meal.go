// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Meal represents one recorded meal belonging to exactly one user.
//
// Day and Hour are deliberately plain strings, NOT time.Time:
// the service never parses them as calendar values. Hour is only ever
// compared lexicographically ("08:00" < "12:30" as strings) when ordering
// meals for the adherence summary. Parsing them into real time types would
// silently change the sort order for values that aren't valid times — and
// the API accepts any string here.
//
// UserID is the sole basis for access control: every query that touches a
// meal filters on it, so a meal is invisible to everyone but its owner.
type Meal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Day         string    `json:"day"`
	Hour        string    `json:"hour"`
	OnDiet      bool      `json:"onDiet"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Summary is the derived dietary-adherence report for one user's meals.
// It is computed on demand and never persisted.
//
// BestMealSequence is the length of the longest unbroken run of on-diet
// meals when the meals are ordered ascending by Hour.
type Summary struct {
	Total            int `json:"total"`
	OnDiet           int `json:"onDiet"`
	OutDiet          int `json:"outDiet"`
	BestMealSequence int `json:"bestMealSequence"`
}
