// Package logs exposes AWS CloudWatch Logs query operations as tools.
// Timestamps cross the tool boundary as epoch milliseconds, matching the
// wrapped API.
package logs

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslogs "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logstypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Name is the registry key of this service.
const Name = "aws/logs"

// API is the subset of the CloudWatch Logs client the tools call.
type API interface {
	DescribeLogGroups(ctx context.Context, params *awslogs.DescribeLogGroupsInput, optFns ...func(*awslogs.Options)) (*awslogs.DescribeLogGroupsOutput, error)
	DescribeLogStreams(ctx context.Context, params *awslogs.DescribeLogStreamsInput, optFns ...func(*awslogs.Options)) (*awslogs.DescribeLogStreamsOutput, error)
	GetLogEvents(ctx context.Context, params *awslogs.GetLogEventsInput, optFns ...func(*awslogs.Options)) (*awslogs.GetLogEventsOutput, error)
	FilterLogEvents(ctx context.Context, params *awslogs.FilterLogEventsInput, optFns ...func(*awslogs.Options)) (*awslogs.FilterLogEventsOutput, error)
}

// Service implements service.Service for CloudWatch Logs.
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
		s.api = awslogs.NewFromConfig(cfg)
	})
	return s.api, s.apiErr
}

type LogGroup struct {
	Name          string `json:"name"`
	StoredBytes   int64  `json:"storedBytes"`
	RetentionDays int32  `json:"retentionDays,omitempty"`
	CreatedAt     int64  `json:"createdAt,omitempty"`
}

type ListLogGroupsInput struct {
	Prefix string `json:"prefix,omitempty"`
	Limit  int32  `json:"limit,omitempty"`
}

type ListLogGroupsOutput struct {
	LogGroups []LogGroup `json:"logGroups"`
	Count     int        `json:"count"`
}

type LogStream struct {
	Name        string `json:"name"`
	LastEventAt int64  `json:"lastEventAt,omitempty"`
	CreatedAt   int64  `json:"createdAt,omitempty"`
}

type ListLogStreamsInput struct {
	LogGroup string `json:"logGroup"`
	Prefix   string `json:"prefix,omitempty"`
	Limit    int32  `json:"limit,omitempty"`
	// OrderByEvent sorts streams by last event time (most recent first)
	// instead of by name; it cannot be combined with a prefix.
	OrderByEvent bool `json:"orderByEvent,omitempty"`
}

type ListLogStreamsOutput struct {
	Streams []LogStream `json:"streams"`
	Count   int         `json:"count"`
}

type Event struct {
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
	LogStream string `json:"logStream,omitempty"`
}

type GetLogEventsInput struct {
	LogGroup  string `json:"logGroup"`
	LogStream string `json:"logStream"`
	Limit     int32  `json:"limit,omitempty"`
	StartTime int64  `json:"startTime,omitempty"`
	EndTime   int64  `json:"endTime,omitempty"`
	FromHead  bool   `json:"fromHead,omitempty"`
}

type GetLogEventsOutput struct {
	Events           []Event `json:"events"`
	Count            int     `json:"count"`
	NextForwardToken string  `json:"nextForwardToken,omitempty"`
}

type FilterLogEventsInput struct {
	LogGroup     string `json:"logGroup"`
	Pattern      string `json:"pattern,omitempty"`
	StreamPrefix string `json:"streamPrefix,omitempty"`
	StartTime    int64  `json:"startTime,omitempty"`
	EndTime      int64  `json:"endTime,omitempty"`
	Limit        int32  `json:"limit,omitempty"`
}

type FilterLogEventsOutput struct {
	Events    []Event `json:"events"`
	Count     int     `json:"count"`
	NextToken string  `json:"nextToken,omitempty"`
}

func (s *Service) methods() []service.Method {
	return []service.Method{
		service.NewMethod("listLogGroups",
			"List CloudWatch log groups, optionally filtered by name prefix",
			s.listLogGroups),
		service.NewMethod("listLogStreams",
			"List log streams inside a log group",
			s.listLogStreams),
		service.NewMethod("getLogEvents",
			"Read events from one log stream; timestamps are epoch milliseconds",
			s.getLogEvents),
		service.NewMethod("filterLogEvents",
			"Search events across a log group with a filter pattern",
			s.filterLogEvents),
	}
}

func (s *Service) listLogGroups(ctx context.Context, in *ListLogGroupsInput) (*ListLogGroupsOutput, error) {
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awslogs.DescribeLogGroupsInput{}
	if in.Prefix != "" {
		params.LogGroupNamePrefix = aws.String(in.Prefix)
	}
	if in.Limit > 0 {
		params.Limit = aws.Int32(in.Limit)
	}
	res, err := cli.DescribeLogGroups(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("logs.DescribeLogGroups", err)
	}
	out := &ListLogGroupsOutput{LogGroups: make([]LogGroup, 0, len(res.LogGroups))}
	for _, g := range res.LogGroups {
		out.LogGroups = append(out.LogGroups, LogGroup{
			Name:          aws.ToString(g.LogGroupName),
			StoredBytes:   aws.ToInt64(g.StoredBytes),
			RetentionDays: aws.ToInt32(g.RetentionInDays),
			CreatedAt:     aws.ToInt64(g.CreationTime),
		})
	}
	out.Count = len(out.LogGroups)
	return out, nil
}

func (s *Service) listLogStreams(ctx context.Context, in *ListLogStreamsInput) (*ListLogStreamsOutput, error) {
	if in.LogGroup == "" {
		return nil, fmt.Errorf("logGroup is required")
	}
	if in.OrderByEvent && in.Prefix != "" {
		return nil, fmt.Errorf("orderByEvent cannot be combined with prefix")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awslogs.DescribeLogStreamsInput{LogGroupName: aws.String(in.LogGroup)}
	if in.Prefix != "" {
		params.LogStreamNamePrefix = aws.String(in.Prefix)
	}
	if in.Limit > 0 {
		params.Limit = aws.Int32(in.Limit)
	}
	if in.OrderByEvent {
		params.OrderBy = logstypes.OrderByLastEventTime
		params.Descending = aws.Bool(true)
	}
	res, err := cli.DescribeLogStreams(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("logs.DescribeLogStreams", err)
	}
	out := &ListLogStreamsOutput{Streams: make([]LogStream, 0, len(res.LogStreams))}
	for _, st := range res.LogStreams {
		out.Streams = append(out.Streams, LogStream{
			Name:        aws.ToString(st.LogStreamName),
			LastEventAt: aws.ToInt64(st.LastEventTimestamp),
			CreatedAt:   aws.ToInt64(st.CreationTime),
		})
	}
	out.Count = len(out.Streams)
	return out, nil
}

func (s *Service) getLogEvents(ctx context.Context, in *GetLogEventsInput) (*GetLogEventsOutput, error) {
	if in.LogGroup == "" || in.LogStream == "" {
		return nil, fmt.Errorf("logGroup and logStream are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awslogs.GetLogEventsInput{
		LogGroupName:  aws.String(in.LogGroup),
		LogStreamName: aws.String(in.LogStream),
		StartFromHead: aws.Bool(in.FromHead),
	}
	if in.Limit > 0 {
		params.Limit = aws.Int32(in.Limit)
	}
	if in.StartTime > 0 {
		params.StartTime = aws.Int64(in.StartTime)
	}
	if in.EndTime > 0 {
		params.EndTime = aws.Int64(in.EndTime)
	}
	res, err := cli.GetLogEvents(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("logs.GetLogEvents", err)
	}
	out := &GetLogEventsOutput{
		Events:           make([]Event, 0, len(res.Events)),
		NextForwardToken: aws.ToString(res.NextForwardToken),
	}
	for _, e := range res.Events {
		out.Events = append(out.Events, Event{
			Timestamp: aws.ToInt64(e.Timestamp),
			Message:   aws.ToString(e.Message),
		})
	}
	out.Count = len(out.Events)
	return out, nil
}

func (s *Service) filterLogEvents(ctx context.Context, in *FilterLogEventsInput) (*FilterLogEventsOutput, error) {
	if in.LogGroup == "" {
		return nil, fmt.Errorf("logGroup is required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awslogs.FilterLogEventsInput{LogGroupName: aws.String(in.LogGroup)}
	if in.Pattern != "" {
		params.FilterPattern = aws.String(in.Pattern)
	}
	if in.StreamPrefix != "" {
		params.LogStreamNamePrefix = aws.String(in.StreamPrefix)
	}
	if in.StartTime > 0 {
		params.StartTime = aws.Int64(in.StartTime)
	}
	if in.EndTime > 0 {
		params.EndTime = aws.Int64(in.EndTime)
	}
	if in.Limit > 0 {
		params.Limit = aws.Int32(in.Limit)
	}
	res, err := cli.FilterLogEvents(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("logs.FilterLogEvents", err)
	}
	out := &FilterLogEventsOutput{
		Events:    make([]Event, 0, len(res.Events)),
		NextToken: aws.ToString(res.NextToken),
	}
	for _, e := range res.Events {
		out.Events = append(out.Events, Event{
			Timestamp: aws.ToInt64(e.Timestamp),
			Message:   aws.ToString(e.Message),
			LogStream: aws.ToString(e.LogStreamName),
		})
	}
	out.Count = len(out.Events)
	return out, nil
}
