// Package auth provides request identity binding, ownership checks,
// and the password hashing primitive.
package auth

import (
	"context"
	"errors"
)

// Errors returned by identity and ownership checks.
var (
	// ErrUnauthenticated indicates no identity is bound to the request.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden indicates the caller is authenticated but is not
	// the owner of the resource being mutated.
	ErrForbidden = errors.New("not the resource owner")
)

// Identity is the only fact carried by a verified credential. It is
// bound to the request context by the auth middleware and lives for
// the duration of one request.
type Identity struct {
	UserID string
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity binds an Identity to the context. The binding is
// read-only once set: downstream code only ever reads it back.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// FromContext returns the Identity bound by the auth middleware, or
// ErrUnauthenticated when the middleware has not run. Every mutating
// service operation calls this first and propagates the failure
// unchanged.
func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// RequireOwner allows the operation only when the caller's identity
// equals the resource's recorded owning-user id.
func RequireOwner(id Identity, ownerID string) error {
	if id.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}
