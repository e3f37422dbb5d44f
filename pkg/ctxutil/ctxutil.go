package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey     ctxKey = "user_id"
	executorIDKey ctxKey = "executor_id"
	superuserKey  ctxKey = "superuser"
	requestIDKey  ctxKey = "request_id"
)

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithExecutorID stores the executor company ID in the context.
func WithExecutorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, executorIDKey, id)
}

// ExecutorIDFromCtx extracts the executor company ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func ExecutorIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(executorIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithSuperuser marks the context caller as a superuser.
func WithSuperuser(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, superuserKey, is)
}

// IsSuperuserCtx reports whether the context caller is a superuser.
func IsSuperuserCtx(ctx context.Context) bool {
	is, _ := ctx.Value(superuserKey).(bool)
	return is
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
