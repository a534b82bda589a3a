package middleware

import "context"

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying a verified user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the verified user id placed in ctx by Authenticator.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
