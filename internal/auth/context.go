package auth

import (
	"context"
	"strings"
)

type ctxKey string

const (
	userIDKey   ctxKey = "auth_user_id"
	userTypeKey ctxKey = "auth_user_type"
)

// ContextWithUser stores the verified user identity in the context.
func ContextWithUser(ctx context.Context, userID int64, userType string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	if v := strings.ToLower(strings.TrimSpace(userType)); v != "" {
		ctx = context.WithValue(ctx, userTypeKey, v)
	}
	return ctx
}

// UserIDFromContext extracts the authenticated user id from the context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(userIDKey).(int64)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// UserTypeFromContext returns the role claim stored in the context
// (lower-cased).
func UserTypeFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userTypeKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// HasRole reports whether the context carries the given user type.
func HasRole(ctx context.Context, role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false
	}
	v, ok := UserTypeFromContext(ctx)
	return ok && v == role
}
