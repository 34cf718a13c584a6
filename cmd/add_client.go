package cmd

import (
	"context"
	"fmt"

	mcpopts "github.com/viant/mcp"

	mcpconfig "github.com/mcpsuite/aws-mcp/mcp/config"
)

// AddClientCmd dynamically imports tools exposed by a remote MCP endpoint
// and re-registers them locally so that they become regular tools.
type AddClientCmd struct {
	Name    string `short:"n" long:"name"    description:"Identifier for the external endpoint"`
	Address string `short:"a" long:"address" description:"HTTP or WS address of the external MCP server"`
	Version string `short:"v" long:"version" description:"Expected protocol version (optional)"`
}

func (c *AddClientCmd) Execute(_ []string) error {
	if c.Name == "" || c.Address == "" {
		return fmt.Errorf("both --name and --address are required")
	}

	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	opts := &mcpconfig.MCPClient{ClientOptions: &mcpopts.ClientOptions{
		Name:    c.Name,
		Version: c.Version,
		Transport: mcpopts.ClientTransport{
			Type:                "sse",
			ClientTransportHTTP: mcpopts.ClientTransportHTTP{URL: c.Address},
		},
	}}

	if err := svc.RegisterClientTools(context.Background(), opts); err != nil {
		return err
	}
	fmt.Printf("imported tools from %s (%s)\n", c.Name, c.Address)
	return nil
}
