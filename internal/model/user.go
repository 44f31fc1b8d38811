// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Registration is anonymous — a user picks a display name and receives a
// session token. There is no password and no uniqueness constraint on the
// username; two people can both register as "Alice" and get independent
// accounts.
//
// WHY SessionToken IS json:"-":
// The token is a bearer credential — anyone holding it IS this user. It is
// delivered to the client exactly once, as an HttpOnly cookie at
// registration time, and must never appear in a JSON response body after
// that. The `json:"-"` tag makes encoding/json skip the field entirely, so
// even a careless `writeJSON(w, 200, user)` cannot leak it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	SessionToken string    `json:"-"` // opaque bearer credential, cookie-only
	CreatedAt    time.Time `json:"createdAt"`
}
