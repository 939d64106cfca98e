package pkglog

import "context"

// MissingCorrelationID is what GetCorrelationID returns for a context that
// never went through the correlation middleware.
const MissingCorrelationID = "[invalid_chain_id]"

type chainIDContextKey struct{}

type usernameContextKey struct{}

// GetCorrelationID returns the correlation ID stored in the context.
//
// Middleware is expected to set this value early in the request lifecycle so
// it can be attached to logs and propagated to downstream calls.
func GetCorrelationID(ctx context.Context) string {
	clm, ok := ctx.Value(chainIDContextKey{}).(string)
	if !ok {
		return MissingCorrelationID
	}
	return clm
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, chainIDContextKey{}, cid)
}

// GetUsername returns the username acting in this context, or "" if unknown.
func GetUsername(ctx context.Context) string {
	name, _ := ctx.Value(usernameContextKey{}).(string)
	return name
}

// SetUsername stores the acting username into the context.
func SetUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey{}, username)
}
