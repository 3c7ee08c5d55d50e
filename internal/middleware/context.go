package middleware

import (
	"context"
	"go-blog-app/internal/auth"
)

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const principalContextKey = contextKey("principal")

// GetPrincipal retrieves the signed-in principal from the request context.
// It returns nil for anonymous requests.
func GetPrincipal(ctx context.Context) *auth.Principal {
	if p, ok := ctx.Value(principalContextKey).(*auth.Principal); ok {
		return p
	}
	return nil
}

// SetPrincipal adds the principal to the request context.
func SetPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}
