// Package awscfg resolves the shared AWS SDK configuration used by every
// tool service in this module.  Credentials and region follow the standard
// SDK resolution chain (environment, shared config, IMDS); the config file
// may narrow it down to an explicit region/profile or point all clients at a
// custom endpoint, e.g. a localstack instance.
package awscfg

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
)

// Options narrows the default SDK resolution chain.
type Options struct {
	// Region overrides the resolved AWS region when non-empty.
	Region string `yaml:"region,omitempty" json:"region,omitempty"`
	// Profile selects a shared-config profile when non-empty.
	Profile string `yaml:"profile,omitempty" json:"profile,omitempty"`
	// Endpoint overrides the service endpoint for every client, which is
	// how the suite is pointed at localstack-style emulators.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	// EnvFile is an optional dotenv file loaded before the SDK resolves
	// credentials from the environment.
	EnvFile string `yaml:"envFile,omitempty" json:"envFile,omitempty"`
}

// Provider loads aws.Config once and hands the same instance to every tool
// service.  Loading is deferred until the first client is actually needed so
// that inspection commands (list-tools, tool detail) work without
// credentials.
type Provider struct {
	options Options

	once sync.Once
	cfg  aws.Config
	err  error
}

// NewProvider creates a provider with the supplied options.
func NewProvider(options Options) *Provider {
	return &Provider{options: options}
}

// Endpoint returns the configured endpoint override, empty when unset.
func (p *Provider) Endpoint() string { return p.options.Endpoint }

// Config resolves the shared aws.Config, loading it on first use.
func (p *Provider) Config(ctx context.Context) (aws.Config, error) {
	p.once.Do(func() {
		if p.options.EnvFile != "" {
			if err := godotenv.Load(p.options.EnvFile); err != nil {
				p.err = fmt.Errorf("load env file %q: %w", p.options.EnvFile, err)
				return
			}
		} else {
			// Best-effort: a missing default .env is not an error.
			_ = godotenv.Load()
		}

		var loadOpts []func(*awsconfig.LoadOptions) error
		if p.options.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(p.options.Region))
		}
		if p.options.Profile != "" {
			loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(p.options.Profile))
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			p.err = fmt.Errorf("load aws config: %w", err)
			return
		}
		if p.options.Endpoint != "" {
			cfg.BaseEndpoint = aws.String(p.options.Endpoint)
		}
		p.cfg = cfg
	})
	return p.cfg, p.err
}
