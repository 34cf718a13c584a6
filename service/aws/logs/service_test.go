package logs

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslogs "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logstypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/stretchr/testify/assert"
)

type stubAPI struct {
	streamsIn *awslogs.DescribeLogStreamsInput
	filterIn  *awslogs.FilterLogEventsInput
}

func (s *stubAPI) DescribeLogGroups(_ context.Context, _ *awslogs.DescribeLogGroupsInput, _ ...func(*awslogs.Options)) (*awslogs.DescribeLogGroupsOutput, error) {
	return &awslogs.DescribeLogGroupsOutput{LogGroups: []logstypes.LogGroup{
		{LogGroupName: aws.String("/aws/lambda/resize"), StoredBytes: aws.Int64(2048), RetentionInDays: aws.Int32(14)},
	}}, nil
}

func (s *stubAPI) DescribeLogStreams(_ context.Context, in *awslogs.DescribeLogStreamsInput, _ ...func(*awslogs.Options)) (*awslogs.DescribeLogStreamsOutput, error) {
	s.streamsIn = in
	return &awslogs.DescribeLogStreamsOutput{LogStreams: []logstypes.LogStream{
		{LogStreamName: aws.String("2024/05/01/[$LATEST]abc"), LastEventTimestamp: aws.Int64(1714521600000)},
	}}, nil
}

func (s *stubAPI) GetLogEvents(_ context.Context, _ *awslogs.GetLogEventsInput, _ ...func(*awslogs.Options)) (*awslogs.GetLogEventsOutput, error) {
	return &awslogs.GetLogEventsOutput{
		Events: []logstypes.OutputLogEvent{
			{Timestamp: aws.Int64(1714521600000), Message: aws.String("START")},
		},
		NextForwardToken: aws.String("f/123"),
	}, nil
}

func (s *stubAPI) FilterLogEvents(_ context.Context, in *awslogs.FilterLogEventsInput, _ ...func(*awslogs.Options)) (*awslogs.FilterLogEventsOutput, error) {
	s.filterIn = in
	return &awslogs.FilterLogEventsOutput{Events: []logstypes.FilteredLogEvent{
		{Timestamp: aws.Int64(1714521601000), Message: aws.String("ERROR boom"), LogStreamName: aws.String("s1")},
	}}, nil
}

func TestListLogGroups(t *testing.T) {
	svc := NewWithAPI(&stubAPI{})
	out, err := svc.listLogGroups(context.Background(), &ListLogGroupsInput{})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, out.Count)
	assert.EqualValues(t, "/aws/lambda/resize", out.LogGroups[0].Name)
	assert.EqualValues(t, 14, out.LogGroups[0].RetentionDays)
}

func TestListLogStreams(t *testing.T) {
	api := &stubAPI{}
	svc := NewWithAPI(api)

	_, err := svc.listLogStreams(context.Background(), &ListLogStreamsInput{})
	assert.Error(t, err, "logGroup is mandatory")

	_, err = svc.listLogStreams(context.Background(), &ListLogStreamsInput{
		LogGroup: "/aws/lambda/resize", Prefix: "2024", OrderByEvent: true,
	})
	assert.Error(t, err, "prefix and orderByEvent are mutually exclusive")

	out, err := svc.listLogStreams(context.Background(), &ListLogStreamsInput{
		LogGroup: "/aws/lambda/resize", OrderByEvent: true,
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, out.Count)
	assert.EqualValues(t, logstypes.OrderByLastEventTime, api.streamsIn.OrderBy)
}

func TestGetLogEvents(t *testing.T) {
	svc := NewWithAPI(&stubAPI{})
	out, err := svc.getLogEvents(context.Background(), &GetLogEventsInput{
		LogGroup: "/aws/lambda/resize", LogStream: "2024/05/01/[$LATEST]abc",
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, out.Count)
	assert.EqualValues(t, "START", out.Events[0].Message)
	assert.EqualValues(t, "f/123", out.NextForwardToken)
}

func TestFilterLogEvents(t *testing.T) {
	api := &stubAPI{}
	svc := NewWithAPI(api)
	out, err := svc.filterLogEvents(context.Background(), &FilterLogEventsInput{
		LogGroup: "/aws/lambda/resize", Pattern: "ERROR",
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, out.Count)
	assert.EqualValues(t, "s1", out.Events[0].LogStream)
	assert.EqualValues(t, "ERROR", aws.ToString(api.filterIn.FilterPattern))
}
