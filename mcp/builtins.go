package mcp

import (
	"strings"

	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/aws/dynamodb"
	"github.com/mcpsuite/aws-mcp/service/aws/lambda"
	"github.com/mcpsuite/aws-mcp/service/aws/logs"
	"github.com/mcpsuite/aws-mcp/service/aws/s3"
	"github.com/mcpsuite/aws-mcp/service/aws/sns"
	"github.com/mcpsuite/aws-mcp/service/aws/sqs"
	"github.com/mcpsuite/aws-mcp/service/aws/sts"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// builtinFactories lists all AWS tool services shipped with the server. The
// key must match the service name exposed by its implementation so that
// pattern matching is intuitive.
var builtinFactories = map[string]func(provider *awscfg.Provider) service.Service{
	sts.Name:      func(p *awscfg.Provider) service.Service { return sts.New(p) },
	s3.Name:       func(p *awscfg.Provider) service.Service { return s3.New(p) },
	dynamodb.Name: func(p *awscfg.Provider) service.Service { return dynamodb.New(p) },
	sqs.Name:      func(p *awscfg.Provider) service.Service { return sqs.New(p) },
	sns.Name:      func(p *awscfg.Provider) service.Service { return sns.New(p) },
	lambda.Name:   func(p *awscfg.Provider) service.Service { return lambda.New(p) },
	logs.Name:     func(p *awscfg.Provider) service.Service { return logs.New(p) },
}

// resolveBuiltinServices converts pattern(s) - "*" for all, prefix or exact -
// into concrete service instances. Duplicate patterns are ignored.
func resolveBuiltinServices(patterns []string, provider *awscfg.Provider) []service.Service {
	selected := make(map[string]struct{})

	add := func(name string) {
		if _, ok := selected[name]; !ok {
			selected[name] = struct{}{}
		}
	}

	for _, p := range patterns {
		switch p {
		case "*":
			for n := range builtinFactories {
				add(n)
			}
		default:
			// prefix match if ends with "/" otherwise exact.
			isPrefix := strings.HasSuffix(p, "/")
			for n := range builtinFactories {
				if (isPrefix && strings.HasPrefix(n, p)) || (!isPrefix && n == p) {
					add(n)
				}
			}
		}
	}

	out := make([]service.Service, 0, len(selected))
	for name := range selected {
		if factory := builtinFactories[name]; factory != nil {
			out = append(out, factory(provider))
		}
	}
	return out
}
