package context

import (
	"context"

	"github.com/viant/mcp/client/auth/transport"
)

// WithAuthToken stores a bearer token that downstream MCP client calls
// attach to outgoing requests.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, transport.ContextAuthTokenKey, token)
}

// AuthToken returns the token set by WithAuthToken, if any.
func AuthToken(ctx context.Context) (string, bool) {
	ret := ctx.Value(transport.ContextAuthTokenKey)
	if ret == nil {
		return "", false
	}
	token, ok := ret.(string)
	return token, ok
}
