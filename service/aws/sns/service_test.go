package sns

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/stretchr/testify/assert"
)

type stubAPI struct {
	publishIn *awssns.PublishInput
}

func (s *stubAPI) ListTopics(_ context.Context, _ *awssns.ListTopicsInput, _ ...func(*awssns.Options)) (*awssns.ListTopicsOutput, error) {
	return &awssns.ListTopicsOutput{Topics: []snstypes.Topic{
		{TopicArn: aws.String("arn:aws:sns:us-east-1:1:alerts")},
	}}, nil
}

func (s *stubAPI) Publish(_ context.Context, in *awssns.PublishInput, _ ...func(*awssns.Options)) (*awssns.PublishOutput, error) {
	s.publishIn = in
	return &awssns.PublishOutput{MessageId: aws.String("m-9")}, nil
}

func TestListTopics(t *testing.T) {
	svc := NewWithAPI(&stubAPI{})
	out, err := svc.listTopics(context.Background(), &ListTopicsInput{})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, out.Count)
	assert.EqualValues(t, "arn:aws:sns:us-east-1:1:alerts", out.TopicArns[0])
}

func TestPublish(t *testing.T) {
	api := &stubAPI{}
	svc := NewWithAPI(api)

	_, err := svc.publish(context.Background(), &PublishInput{TopicArn: "arn"})
	assert.Error(t, err, "message is mandatory")

	out, err := svc.publish(context.Background(), &PublishInput{
		TopicArn: "arn:aws:sns:us-east-1:1:alerts",
		Message:  "disk full",
		Subject:  "alert",
	})
	assert.NoError(t, err)
	assert.EqualValues(t, "m-9", out.MessageID)
	assert.EqualValues(t, "alert", aws.ToString(api.publishIn.Subject))
}
