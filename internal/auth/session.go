// Package auth provides session-token issuance and the authentication
// middleware for the diet tracker API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. POST /api/user with a username → server generates an opaque session token
// 2. The token is stored on the users row and sent back as an HttpOnly cookie
// 3. On every protected request, middleware reads the cookie and looks the
//    token up in the users table → that row IS the authenticated identity
// 4. No cookie, or a token matching no row → 401, request never reaches a handler
//
// WHY AN OPAQUE TOKEN INSTEAD OF A JWT?
// A JWT carries claims and an expiry and can be validated offline. Here the
// credential is the opposite: a meaningless random value whose only property
// is that it matches exactly one users row. It never expires, never rotates,
// and revocation (if we ever wanted it) would be a single DB write. The cost
// is one indexed SELECT per request — fine at this scale, and it guarantees
// the identity is re-resolved fresh on every request instead of trusted from
// a client-held claim.
package auth

import "github.com/google/uuid"

// NewSessionToken generates a fresh opaque session credential.
//
// UUID v4 is 122 bits of crypto/rand randomness — unguessable, collision-free
// for any realistic number of registrations, and matched only by equality.
// The value has no internal structure the client could inspect or forge.
func NewSessionToken() string {
	return uuid.NewString()
}
