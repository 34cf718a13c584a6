// Package sts exposes AWS STS identity operations as tools.
package sts

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Name is the registry key of this service.
const Name = "aws/sts"

// API is the subset of the STS client the tools call.
type API interface {
	GetCallerIdentity(ctx context.Context, params *awssts.GetCallerIdentityInput, optFns ...func(*awssts.Options)) (*awssts.GetCallerIdentityOutput, error)
}

// Service implements service.Service for STS.
type Service struct {
	*service.Base
	provider *awscfg.Provider

	once   sync.Once
	api    API
	apiErr error
}

// New creates the service; the underlying client is built lazily from the
// shared provider on first call.
func New(provider *awscfg.Provider) *Service {
	s := &Service{provider: provider}
	s.Base = service.NewBase(Name, s.methods()...)
	return s
}

// NewWithAPI wires a pre-built client, used by tests.
func NewWithAPI(api API) *Service {
	s := &Service{api: api}
	s.Base = service.NewBase(Name, s.methods()...)
	return s
}

func (s *Service) client(ctx context.Context) (API, error) {
	s.once.Do(func() {
		if s.api != nil {
			return
		}
		cfg, err := s.provider.Config(ctx)
		if err != nil {
			s.apiErr = err
			return
		}
		s.api = awssts.NewFromConfig(cfg)
	})
	return s.api, s.apiErr
}

// GetCallerIdentityInput has no parameters.
type GetCallerIdentityInput struct{}

// GetCallerIdentityOutput echoes the resolved principal.
type GetCallerIdentityOutput struct {
	Account string `json:"account"`
	Arn     string `json:"arn"`
	UserID  string `json:"userId"`
}

func (s *Service) methods() []service.Method {
	return []service.Method{
		service.NewMethod("getCallerIdentity",
			"Return the AWS account, ARN and user id of the credentials in use",
			s.getCallerIdentity),
	}
}

func (s *Service) getCallerIdentity(ctx context.Context, _ *GetCallerIdentityInput) (*GetCallerIdentityOutput, error) {
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	res, err := cli.GetCallerIdentity(ctx, &awssts.GetCallerIdentityInput{})
	if err != nil {
		return nil, awscfg.APIError("sts.GetCallerIdentity", err)
	}
	return &GetCallerIdentityOutput{
		Account: aws.ToString(res.Account),
		Arn:     aws.ToString(res.Arn),
		UserID:  aws.ToString(res.UserId),
	}, nil
}
