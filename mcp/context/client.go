package context

import (
	"context"

	"github.com/viant/mcp/client"
)

type clientKey string

// ClientKey carries a per-request MCP client so proxied tools can reach the
// endpoint associated with the calling session.
var ClientKey = clientKey("client")

// WithClient binds an MCP client to the context.
func WithClient(ctx context.Context, aClient client.Interface) context.Context {
	return context.WithValue(ctx, ClientKey, aClient)
}

// Client returns the MCP client bound by WithClient, if any.
func Client(ctx context.Context) (client.Interface, bool) {
	ret := ctx.Value(ClientKey)
	if ret == nil {
		return nil, false
	}
	aClient, ok := ret.(client.Interface)
	return aClient, ok
}
