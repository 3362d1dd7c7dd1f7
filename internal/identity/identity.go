// Package identity is the profile directory: it owns profile records and
// session tokens. The catalog core consumes it only through the Resolver
// interface so the directory stays swappable.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrProfileNotFound reports a missing profile for a keyed lookup.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists signals the username is already taken.
	ErrProfileExists = errors.New("profile already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized indicates an invalid, expired, or missing session token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Profile is a user's public identity. Immutable from the catalog core's
// perspective; only the directory itself writes these records.
type Profile struct {
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// Resolver looks profiles up by exact username or by free text.
type Resolver interface {
	// LookupByUsername returns the profile for an exact username or
	// ErrProfileNotFound.
	LookupByUsername(ctx context.Context, username string) (Profile, error)
	// SearchUsernames returns a bounded list of profiles whose username
	// contains the given text. Callers must not depend on the order.
	SearchUsernames(ctx context.Context, text string) ([]Profile, error)
}
