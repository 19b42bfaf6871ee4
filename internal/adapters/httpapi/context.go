package httpapi

import "context"

type emailKey struct{}

// WithEmail stores the authenticated user's email in the request context.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}

// EmailFromContext returns the authenticated email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(emailKey{}).(string)
	return v, ok && v != ""
}
