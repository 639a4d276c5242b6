// Package store persists users and journal entries behind a single contract
// with two interchangeable backends: an embedded file-based SQLite store and
// a hosted multi-tenant Postgres store.
package store

import "errors"

// Sentinel errors for stable mapping at the route boundary. Handlers must
// never inspect backend error strings; they match on these with errors.Is.
var (
	// ErrConflict indicates a unique constraint violation (email taken).
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials is returned uniformly for an unknown email and a
	// wrong password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound indicates the entry does not exist or belongs to another
	// user. The two causes are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the hosted backend is throttling requests.
	ErrRateLimited = errors.New("rate limited")
)
