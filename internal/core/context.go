package core

import "context"

type contextKey string

const ctxKeyUser contextKey = "user"

// ContextWithUser attaches the authenticated user to ctx.
func ContextWithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(User)
	return u, ok && u.ID != ""
}

// requireUser returns the user in ctx or an Unauthenticated error.
func requireUser(ctx context.Context) (User, error) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return User{}, newError(KindUnauthenticated, "Unauthorized")
	}
	return u, nil
}
