package auth

import (
	"context"

	"github.com/user/bloglist-go/apperror"
)

// contextKey is a custom type for context keys, so values set here cannot
// collide with keys from other packages.
type contextKey string

const tokenContextKey contextKey = "auth_token"

// Identity is the authenticated caller, decoded from a valid session token.
type Identity struct {
	UserID   string
	Username string
}

// tokenState records what the extractor found: an identity, a verification
// failure, or (when absent from the context) no bearer token at all.
type tokenState struct {
	identity *Identity
	err      error
}

// NewContextWithIdentity returns a child context carrying id.
func NewContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, tokenContextKey, tokenState{identity: &id})
}

// newContextWithTokenError records that a bearer token was sent but failed
// verification.
func newContextWithTokenError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, tokenContextKey, tokenState{err: err})
}

// IdentityFromContext returns the identity if a valid token was presented.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	state, ok := ctx.Value(tokenContextKey).(tokenState)
	if !ok || state.identity == nil {
		return Identity{}, false
	}
	return *state.identity, true
}

// RequireIdentity returns the caller's identity or the 401 error a protected
// handler should return: "token invalid" when verification failed and
// "token missing" when no bearer token was sent.
func RequireIdentity(ctx context.Context) (Identity, error) {
	state, ok := ctx.Value(tokenContextKey).(tokenState)
	if !ok {
		return Identity{}, apperror.NewAuthError("token missing", nil)
	}
	if state.err != nil {
		return Identity{}, apperror.NewAuthError("token invalid", state.err)
	}
	return *state.identity, nil
}
