package sqs

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
)

type stubAPI struct {
	sendIn    *awssqs.SendMessageInput
	receiveIn *awssqs.ReceiveMessageInput
	deleteIn  *awssqs.DeleteMessageInput
	messages  []sqstypes.Message
}

func (s *stubAPI) ListQueues(_ context.Context, _ *awssqs.ListQueuesInput, _ ...func(*awssqs.Options)) (*awssqs.ListQueuesOutput, error) {
	return &awssqs.ListQueuesOutput{QueueUrls: []string{"https://sqs/q1", "https://sqs/q2"}}, nil
}

func (s *stubAPI) SendMessage(_ context.Context, in *awssqs.SendMessageInput, _ ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error) {
	s.sendIn = in
	return &awssqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func (s *stubAPI) ReceiveMessage(_ context.Context, in *awssqs.ReceiveMessageInput, _ ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error) {
	s.receiveIn = in
	return &awssqs.ReceiveMessageOutput{Messages: s.messages}, nil
}

func (s *stubAPI) DeleteMessage(_ context.Context, in *awssqs.DeleteMessageInput, _ ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error) {
	s.deleteIn = in
	return &awssqs.DeleteMessageOutput{}, nil
}

func TestListQueues(t *testing.T) {
	svc := NewWithAPI(&stubAPI{})
	out, err := svc.listQueues(context.Background(), &ListQueuesInput{})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, out.Count)
}

func TestSendMessage(t *testing.T) {
	api := &stubAPI{}
	svc := NewWithAPI(api)

	_, err := svc.sendMessage(context.Background(), &SendMessageInput{QueueURL: "https://sqs/q1"})
	assert.Error(t, err, "body is mandatory")

	out, err := svc.sendMessage(context.Background(), &SendMessageInput{
		QueueURL:   "https://sqs/q1",
		Body:       "hello",
		Attributes: map[string]string{"kind": "greeting"},
	})
	assert.NoError(t, err)
	assert.EqualValues(t, "m-1", out.MessageID)
	attr, ok := api.sendIn.MessageAttributes["kind"]
	if assert.True(t, ok) {
		assert.EqualValues(t, "greeting", aws.ToString(attr.StringValue))
	}
}

func TestReceiveMessage(t *testing.T) {
	api := &stubAPI{messages: []sqstypes.Message{
		{
			MessageId:     aws.String("m-1"),
			ReceiptHandle: aws.String("rh-1"),
			Body:          aws.String("hello"),
		},
	}}
	svc := NewWithAPI(api)

	out, err := svc.receiveMessage(context.Background(), &ReceiveMessageInput{QueueURL: "https://sqs/q1"})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, out.Count)
	assert.EqualValues(t, "rh-1", out.Messages[0].ReceiptHandle)
	assert.EqualValues(t, 1, api.receiveIn.MaxNumberOfMessages, "defaults to one message")
}

func TestDeleteMessage(t *testing.T) {
	api := &stubAPI{}
	svc := NewWithAPI(api)

	out, err := svc.deleteMessage(context.Background(), &DeleteMessageInput{
		QueueURL:      "https://sqs/q1",
		ReceiptHandle: "rh-1",
	})
	assert.NoError(t, err)
	assert.True(t, out.Deleted)
	assert.EqualValues(t, "rh-1", aws.ToString(api.deleteIn.ReceiptHandle))
}
