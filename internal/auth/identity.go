package auth

import (
	"context"
	"strings"

	"coursehub/internal/apperror"
	"coursehub/internal/models"
)

// BearerPrefix is matched exactly and case-sensitively.
const BearerPrefix = "Bearer "

// Identity is the caller of a single request, taken from a validated token.
type Identity struct {
	SubjectID string
	Role      models.Role
}

// IdentityFromHeader turns a raw Authorization header into an Identity.
// Validation errors from tokens are returned unchanged.
func IdentityFromHeader(header string, tokens TokenValidator) (Identity, error) {
	if header == "" {
		return Identity{}, apperror.Unauthorized("No token provided")
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return Identity{}, apperror.Unauthorized("Invalid token")
	}

	claims, err := tokens.Validate(strings.TrimPrefix(header, BearerPrefix))
	if err != nil {
		return Identity{}, err
	}

	return Identity{SubjectID: claims.Subject, Role: claims.Role}, nil
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the Identity stored by NewContext.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
