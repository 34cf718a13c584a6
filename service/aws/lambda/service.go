// Package lambda exposes AWS Lambda function operations as tools.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Name is the registry key of this service.
const Name = "aws/lambda"

// API is the subset of the Lambda client the tools call.
type API interface {
	ListFunctions(ctx context.Context, params *awslambda.ListFunctionsInput, optFns ...func(*awslambda.Options)) (*awslambda.ListFunctionsOutput, error)
	GetFunction(ctx context.Context, params *awslambda.GetFunctionInput, optFns ...func(*awslambda.Options)) (*awslambda.GetFunctionOutput, error)
	Invoke(ctx context.Context, params *awslambda.InvokeInput, optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error)
}

// Service implements service.Service for Lambda.
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
		s.api = awslambda.NewFromConfig(cfg)
	})
	return s.api, s.apiErr
}

type Function struct {
	Name         string `json:"name"`
	Runtime      string `json:"runtime,omitempty"`
	MemoryMB     int32  `json:"memoryMb,omitempty"`
	TimeoutSec   int32  `json:"timeoutSec,omitempty"`
	Description  string `json:"description,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

type ListFunctionsInput struct {
	MaxItems int32 `json:"maxItems,omitempty"`
}

type ListFunctionsOutput struct {
	Functions []Function `json:"functions"`
	Count     int        `json:"count"`
}

type GetFunctionInput struct {
	Name string `json:"name"`
}

type GetFunctionOutput struct {
	Function Function `json:"function"`
	State    string   `json:"state,omitempty"`
	CodeSize int64    `json:"codeSize"`
}

type InvokeInput struct {
	Name string `json:"name"`
	// Payload is a JSON document passed verbatim to the function.
	Payload string `json:"payload,omitempty"`
	// InvocationType defaults to RequestResponse; use Event for async.
	InvocationType string `json:"invocationType,omitempty"`
}

type InvokeOutput struct {
	StatusCode      int32  `json:"statusCode"`
	Payload         string `json:"payload,omitempty"`
	FunctionError   string `json:"functionError,omitempty"`
	ExecutedVersion string `json:"executedVersion,omitempty"`
}

func (s *Service) methods() []service.Method {
	return []service.Method{
		service.NewMethod("listFunctions",
			"List Lambda functions with runtime and resource settings",
			s.listFunctions),
		service.NewMethod("getFunction",
			"Describe a Lambda function by name or ARN",
			s.getFunction),
		service.NewMethod("invoke",
			"Invoke a Lambda function with a JSON payload and return its response",
			s.invoke),
	}
}

func functionFromConfig(cfg lambdatypes.FunctionConfiguration) Function {
	return Function{
		Name:         aws.ToString(cfg.FunctionName),
		Runtime:      string(cfg.Runtime),
		MemoryMB:     aws.ToInt32(cfg.MemorySize),
		TimeoutSec:   aws.ToInt32(cfg.Timeout),
		Description:  aws.ToString(cfg.Description),
		LastModified: aws.ToString(cfg.LastModified),
	}
}

func (s *Service) listFunctions(ctx context.Context, in *ListFunctionsInput) (*ListFunctionsOutput, error) {
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awslambda.ListFunctionsInput{}
	if in.MaxItems > 0 {
		params.MaxItems = aws.Int32(in.MaxItems)
	}
	res, err := cli.ListFunctions(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("lambda.ListFunctions", err)
	}
	out := &ListFunctionsOutput{Functions: make([]Function, 0, len(res.Functions))}
	for _, f := range res.Functions {
		out.Functions = append(out.Functions, functionFromConfig(f))
	}
	out.Count = len(out.Functions)
	return out, nil
}

func (s *Service) getFunction(ctx context.Context, in *GetFunctionInput) (*GetFunctionOutput, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	res, err := cli.GetFunction(ctx, &awslambda.GetFunctionInput{FunctionName: aws.String(in.Name)})
	if err != nil {
		return nil, awscfg.APIError("lambda.GetFunction", err)
	}
	out := &GetFunctionOutput{}
	if res.Configuration != nil {
		out.Function = functionFromConfig(*res.Configuration)
		out.State = string(res.Configuration.State)
		out.CodeSize = res.Configuration.CodeSize
	}
	return out, nil
}

func (s *Service) invoke(ctx context.Context, in *InvokeInput) (*InvokeOutput, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if in.Payload != "" && !json.Valid([]byte(in.Payload)) {
		return nil, fmt.Errorf("payload must be a valid JSON document")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awslambda.InvokeInput{FunctionName: aws.String(in.Name)}
	if in.Payload != "" {
		params.Payload = []byte(in.Payload)
	}
	switch in.InvocationType {
	case "":
		params.InvocationType = lambdatypes.InvocationTypeRequestResponse
	case string(lambdatypes.InvocationTypeRequestResponse),
		string(lambdatypes.InvocationTypeEvent),
		string(lambdatypes.InvocationTypeDryRun):
		params.InvocationType = lambdatypes.InvocationType(in.InvocationType)
	default:
		return nil, fmt.Errorf("unsupported invocationType: %v", in.InvocationType)
	}
	res, err := cli.Invoke(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("lambda.Invoke", err)
	}
	return &InvokeOutput{
		StatusCode:      res.StatusCode,
		Payload:         string(res.Payload),
		FunctionError:   aws.ToString(res.FunctionError),
		ExecutedVersion: aws.ToString(res.ExecutedVersion),
	}, nil
}
