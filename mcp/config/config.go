package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	mcp "github.com/viant/mcp"

	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Group holds either inline items or a URL pointing at a document that
// resolves to them.
type Group[T any] struct {
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Items []T    `yaml:"items,omitempty" json:"items,omitempty"`
}

// Config is the YAML/JSON configuration model accepted on startup.
type Config struct {
	// Server carries the MCP server options (transport, port, auth).
	Server *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`
	// AWS narrows credential/region resolution and may point the SDK at a
	// custom endpoint.
	AWS awscfg.Options `yaml:"aws,omitempty" json:"aws,omitempty"`
	// Builtins selects which AWS tool services get registered: "*" for all,
	// "aws/" for a prefix, or exact names like "aws/s3".
	Builtins []string `yaml:"builtins,omitempty" json:"builtins,omitempty"`
	// MCP lists external MCP endpoints whose tools are federated into the
	// local registry.
	MCP *Group[*MCPClient] `yaml:"mcp,omitempty" json:"mcp,omitempty"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate fails fast on malformed settings.
func (c *Config) Validate() error {
	if c.AWS.Endpoint != "" {
		parsed, err := url.Parse(c.AWS.Endpoint)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("aws.endpoint %q is not a valid URL", c.AWS.Endpoint)
		}
	}
	if c.MCP != nil {
		for i, item := range c.MCP.Items {
			if item == nil || item.ClientOptions == nil || item.Name == "" {
				return fmt.Errorf("mcp.items[%d]: name is required", i)
			}
		}
	}
	return nil
}

// MCPClient augments mcp.ClientOptions with optional description overrides
// for discovery tools (resources and prompts). The map keys use path-style
// identifiers relative to the discovery namespace, e.g.:
//   - "resources/list"
//   - "resources/read"
//   - "resources/templates/list"
//   - "prompts/list"
//   - "prompts/get"
//
// When set, these override the default method descriptions.
type MCPClient struct {
	*mcp.ClientOptions `yaml:",inline" json:",inline"`
	Descriptions       map[string]string `yaml:"descriptions,omitempty" json:"descriptions,omitempty"`
	// Metadata is an arbitrary key/value map injected into discovery
	// responses under meta["metadata"], a side channel for MCP hosts.
	Metadata map[string]interface{} `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	// Required marks the endpoint as mandatory: a bootstrap failure becomes
	// an error instead of a logged warning.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
}
