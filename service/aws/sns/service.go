// Package sns exposes AWS SNS topic operations as tools.
package sns

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Name is the registry key of this service.
const Name = "aws/sns"

// API is the subset of the SNS client the tools call.
type API interface {
	ListTopics(ctx context.Context, params *awssns.ListTopicsInput, optFns ...func(*awssns.Options)) (*awssns.ListTopicsOutput, error)
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// Service implements service.Service for SNS.
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
		s.api = awssns.NewFromConfig(cfg)
	})
	return s.api, s.apiErr
}

type ListTopicsInput struct {
	NextToken string `json:"nextToken,omitempty"`
}

type ListTopicsOutput struct {
	TopicArns []string `json:"topicArns"`
	Count     int      `json:"count"`
	NextToken string   `json:"nextToken,omitempty"`
}

type PublishInput struct {
	TopicArn   string            `json:"topicArn"`
	Message    string            `json:"message"`
	Subject    string            `json:"subject,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type PublishOutput struct {
	MessageID string `json:"messageId"`
}

func (s *Service) methods() []service.Method {
	return []service.Method{
		service.NewMethod("listTopics",
			"List SNS topic ARNs",
			s.listTopics),
		service.NewMethod("publish",
			"Publish a message to an SNS topic",
			s.publish),
	}
}

func (s *Service) listTopics(ctx context.Context, in *ListTopicsInput) (*ListTopicsOutput, error) {
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awssns.ListTopicsInput{}
	if in.NextToken != "" {
		params.NextToken = aws.String(in.NextToken)
	}
	res, err := cli.ListTopics(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("sns.ListTopics", err)
	}
	out := &ListTopicsOutput{
		TopicArns: make([]string, 0, len(res.Topics)),
		NextToken: aws.ToString(res.NextToken),
	}
	for _, t := range res.Topics {
		out.TopicArns = append(out.TopicArns, aws.ToString(t.TopicArn))
	}
	out.Count = len(out.TopicArns)
	return out, nil
}

func (s *Service) publish(ctx context.Context, in *PublishInput) (*PublishOutput, error) {
	if in.TopicArn == "" || in.Message == "" {
		return nil, fmt.Errorf("topicArn and message are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awssns.PublishInput{
		TopicArn: aws.String(in.TopicArn),
		Message:  aws.String(in.Message),
	}
	if in.Subject != "" {
		params.Subject = aws.String(in.Subject)
	}
	if len(in.Attributes) > 0 {
		params.MessageAttributes = make(map[string]snstypes.MessageAttributeValue, len(in.Attributes))
		for k, v := range in.Attributes {
			params.MessageAttributes[k] = snstypes.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}
	}
	res, err := cli.Publish(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("sns.Publish", err)
	}
	return &PublishOutput{MessageID: aws.ToString(res.MessageId)}, nil
}
