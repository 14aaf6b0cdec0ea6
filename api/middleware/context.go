package middleware

import (
	"context"

	"github.com/quotedesk/quotedesk-backend/pkg/auth"
)

type ctxKey string

const (
	ctxKeyClaims    ctxKey = "claims"
	ctxKeyRequestID ctxKey = "request_id"
)

// ClaimsFromContext returns the authenticated caller's token claims, or nil
// on unauthenticated routes.
func ClaimsFromContext(ctx context.Context) *auth.AccessTokenClaims {
	claims, _ := ctx.Value(ctxKeyClaims).(*auth.AccessTokenClaims)
	return claims
}

// RequestIDFromContext returns the request correlation id, if one was set.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

func withClaims(ctx context.Context, claims *auth.AccessTokenClaims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}
