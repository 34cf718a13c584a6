// Package sqs exposes AWS SQS queue and message operations as tools.
package sqs

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Name is the registry key of this service.
const Name = "aws/sqs"

// API is the subset of the SQS client the tools call.
type API interface {
	ListQueues(ctx context.Context, params *awssqs.ListQueuesInput, optFns ...func(*awssqs.Options)) (*awssqs.ListQueuesOutput, error)
	SendMessage(ctx context.Context, params *awssqs.SendMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *awssqs.ReceiveMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *awssqs.DeleteMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error)
}

// Service implements service.Service for SQS.
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
		s.api = awssqs.NewFromConfig(cfg)
	})
	return s.api, s.apiErr
}

type ListQueuesInput struct {
	Prefix     string `json:"prefix,omitempty"`
	MaxResults int32  `json:"maxResults,omitempty"`
}

type ListQueuesOutput struct {
	QueueURLs []string `json:"queueUrls"`
	Count     int      `json:"count"`
}

type SendMessageInput struct {
	QueueURL     string            `json:"queueUrl"`
	Body         string            `json:"body"`
	DelaySeconds int32             `json:"delaySeconds,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

type SendMessageOutput struct {
	MessageID string `json:"messageId"`
}

type Message struct {
	MessageID     string            `json:"messageId"`
	ReceiptHandle string            `json:"receiptHandle"`
	Body          string            `json:"body"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

type ReceiveMessageInput struct {
	QueueURL          string `json:"queueUrl"`
	MaxMessages       int32  `json:"maxMessages,omitempty"`
	WaitSeconds       int32  `json:"waitSeconds,omitempty"`
	VisibilityTimeout int32  `json:"visibilityTimeout,omitempty"`
}

type ReceiveMessageOutput struct {
	Messages []Message `json:"messages"`
	Count    int       `json:"count"`
}

type DeleteMessageInput struct {
	QueueURL      string `json:"queueUrl"`
	ReceiptHandle string `json:"receiptHandle"`
}

type DeleteMessageOutput struct {
	Deleted bool `json:"deleted"`
}

func (s *Service) methods() []service.Method {
	return []service.Method{
		service.NewMethod("listQueues",
			"List SQS queue URLs, optionally filtered by name prefix",
			s.listQueues),
		service.NewMethod("sendMessage",
			"Send a message to an SQS queue",
			s.sendMessage),
		service.NewMethod("receiveMessage",
			"Receive up to maxMessages from an SQS queue; supports long polling via waitSeconds",
			s.receiveMessage),
		service.NewMethod("deleteMessage",
			"Delete a received message using its receipt handle",
			s.deleteMessage),
	}
}

func (s *Service) listQueues(ctx context.Context, in *ListQueuesInput) (*ListQueuesOutput, error) {
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awssqs.ListQueuesInput{}
	if in.Prefix != "" {
		params.QueueNamePrefix = aws.String(in.Prefix)
	}
	if in.MaxResults > 0 {
		params.MaxResults = aws.Int32(in.MaxResults)
	}
	res, err := cli.ListQueues(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("sqs.ListQueues", err)
	}
	return &ListQueuesOutput{QueueURLs: res.QueueUrls, Count: len(res.QueueUrls)}, nil
}

func (s *Service) sendMessage(ctx context.Context, in *SendMessageInput) (*SendMessageOutput, error) {
	if in.QueueURL == "" || in.Body == "" {
		return nil, fmt.Errorf("queueUrl and body are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awssqs.SendMessageInput{
		QueueUrl:    aws.String(in.QueueURL),
		MessageBody: aws.String(in.Body),
	}
	if in.DelaySeconds > 0 {
		params.DelaySeconds = in.DelaySeconds
	}
	if len(in.Attributes) > 0 {
		params.MessageAttributes = make(map[string]sqstypes.MessageAttributeValue, len(in.Attributes))
		for k, v := range in.Attributes {
			params.MessageAttributes[k] = sqstypes.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}
	}
	res, err := cli.SendMessage(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("sqs.SendMessage", err)
	}
	return &SendMessageOutput{MessageID: aws.ToString(res.MessageId)}, nil
}

func (s *Service) receiveMessage(ctx context.Context, in *ReceiveMessageInput) (*ReceiveMessageOutput, error) {
	if in.QueueURL == "" {
		return nil, fmt.Errorf("queueUrl is required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	maxMessages := in.MaxMessages
	if maxMessages <= 0 {
		maxMessages = 1
	}
	params := &awssqs.ReceiveMessageInput{
		QueueUrl:              aws.String(in.QueueURL),
		MaxNumberOfMessages:   maxMessages,
		MessageAttributeNames: []string{"All"},
	}
	if in.WaitSeconds > 0 {
		params.WaitTimeSeconds = in.WaitSeconds
	}
	if in.VisibilityTimeout > 0 {
		params.VisibilityTimeout = in.VisibilityTimeout
	}
	res, err := cli.ReceiveMessage(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("sqs.ReceiveMessage", err)
	}
	out := &ReceiveMessageOutput{Messages: make([]Message, 0, len(res.Messages))}
	for _, m := range res.Messages {
		msg := Message{
			MessageID:     aws.ToString(m.MessageId),
			ReceiptHandle: aws.ToString(m.ReceiptHandle),
			Body:          aws.ToString(m.Body),
		}
		if len(m.MessageAttributes) > 0 {
			msg.Attributes = make(map[string]string, len(m.MessageAttributes))
			for k, v := range m.MessageAttributes {
				msg.Attributes[k] = aws.ToString(v.StringValue)
			}
		}
		out.Messages = append(out.Messages, msg)
	}
	out.Count = len(out.Messages)
	return out, nil
}

func (s *Service) deleteMessage(ctx context.Context, in *DeleteMessageInput) (*DeleteMessageOutput, error) {
	if in.QueueURL == "" || in.ReceiptHandle == "" {
		return nil, fmt.Errorf("queueUrl and receiptHandle are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	if _, err = cli.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      aws.String(in.QueueURL),
		ReceiptHandle: aws.String(in.ReceiptHandle),
	}); err != nil {
		return nil, awscfg.APIError("sqs.DeleteMessage", err)
	}
	return &DeleteMessageOutput{Deleted: true}, nil
}
