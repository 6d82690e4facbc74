package auth

import (
	"context"
)

type contextKey string

var (
	principalKey contextKey = "principal_id"
	sessionKey   contextKey = "session_id"
	requestIDKey contextKey = "request_id"
)

// SetPrincipal stores the authenticated principal and its session for handlers
func SetPrincipal(ctx context.Context, principalID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, principalKey, principalID)
	return context.WithValue(ctx, sessionKey, sessionID)
}

// PrincipalID returns "" when the request is unauthenticated
func PrincipalID(ctx context.Context) string {
	if v, ok := ctx.Value(principalKey).(string); ok {
		return v
	}
	return ""
}

func SessionID(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey).(string); ok {
		return v
	}
	return ""
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
