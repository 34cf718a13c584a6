package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

type stubAPI struct {
	getItemIn *awsdynamodb.GetItemInput
	putItemIn *awsdynamodb.PutItemInput
	queryIn   *awsdynamodb.QueryInput
	item      map[string]ddbtypes.AttributeValue
	queryOut  []map[string]ddbtypes.AttributeValue
}

func (s *stubAPI) ListTables(_ context.Context, _ *awsdynamodb.ListTablesInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.ListTablesOutput, error) {
	return &awsdynamodb.ListTablesOutput{TableNames: []string{"orders", "users"}}, nil
}

func (s *stubAPI) DescribeTable(_ context.Context, in *awsdynamodb.DescribeTableInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.DescribeTableOutput, error) {
	return &awsdynamodb.DescribeTableOutput{Table: &ddbtypes.TableDescription{
		TableName:   in.TableName,
		TableStatus: ddbtypes.TableStatusActive,
		ItemCount:   aws.Int64(42),
		KeySchema: []ddbtypes.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: ddbtypes.KeyTypeHash},
		},
	}}, nil
}

func (s *stubAPI) GetItem(_ context.Context, in *awsdynamodb.GetItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error) {
	s.getItemIn = in
	return &awsdynamodb.GetItemOutput{Item: s.item}, nil
}

func (s *stubAPI) PutItem(_ context.Context, in *awsdynamodb.PutItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error) {
	s.putItemIn = in
	return &awsdynamodb.PutItemOutput{}, nil
}

func (s *stubAPI) DeleteItem(_ context.Context, _ *awsdynamodb.DeleteItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error) {
	return &awsdynamodb.DeleteItemOutput{}, nil
}

func (s *stubAPI) Query(_ context.Context, in *awsdynamodb.QueryInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error) {
	s.queryIn = in
	return &awsdynamodb.QueryOutput{Items: s.queryOut, Count: int32(len(s.queryOut))}, nil
}

func TestListAndDescribe(t *testing.T) {
	svc := NewWithAPI(&stubAPI{})

	tables, err := svc.listTables(context.Background(), &ListTablesInput{})
	assert.NoError(t, err)
	assert.EqualValues(t, []string{"orders", "users"}, tables.Tables)

	_, err = svc.describeTable(context.Background(), &DescribeTableInput{})
	assert.Error(t, err, "table is mandatory")

	desc, err := svc.describeTable(context.Background(), &DescribeTableInput{Table: "orders"})
	assert.NoError(t, err)
	assert.EqualValues(t, "orders", desc.Table.Name)
	assert.EqualValues(t, "ACTIVE", desc.Table.Status)
	assert.EqualValues(t, 42, desc.Table.ItemCount)
	if assert.Len(t, desc.Table.KeySchema, 1) {
		assert.EqualValues(t, "pk", desc.Table.KeySchema[0].Attribute)
	}
}

func TestGetItem(t *testing.T) {
	api := &stubAPI{item: map[string]ddbtypes.AttributeValue{
		"pk":   &ddbtypes.AttributeValueMemberS{Value: "order#1"},
		"total": &ddbtypes.AttributeValueMemberN{Value: "12.5"},
	}}
	svc := NewWithAPI(api)

	out, err := svc.getItem(context.Background(), &GetItemInput{
		Table: "orders",
		Key:   map[string]interface{}{"pk": "order#1"},
	})
	assert.NoError(t, err)
	assert.True(t, out.Found)
	assert.EqualValues(t, "order#1", out.Item["pk"])

	// Key attributes travel as attribute values.
	keyAttr, ok := api.getItemIn.Key["pk"].(*ddbtypes.AttributeValueMemberS)
	if assert.True(t, ok) {
		assert.EqualValues(t, "order#1", keyAttr.Value)
	}
}

func TestGetItemMissing(t *testing.T) {
	svc := NewWithAPI(&stubAPI{})
	out, err := svc.getItem(context.Background(), &GetItemInput{
		Table: "orders",
		Key:   map[string]interface{}{"pk": "absent"},
	})
	assert.NoError(t, err)
	assert.False(t, out.Found)
	assert.Nil(t, out.Item)
}

func TestPutItem(t *testing.T) {
	api := &stubAPI{}
	svc := NewWithAPI(api)

	out, err := svc.putItem(context.Background(), &PutItemInput{
		Table: "orders",
		Item:  map[string]interface{}{"pk": "order#2", "qty": 3},
	})
	assert.NoError(t, err)
	assert.True(t, out.Stored)
	assert.EqualValues(t, "orders", aws.ToString(api.putItemIn.TableName))
}

func TestQuery(t *testing.T) {
	api := &stubAPI{queryOut: []map[string]ddbtypes.AttributeValue{
		{"pk": &ddbtypes.AttributeValueMemberS{Value: "order#1"}},
	}}
	svc := NewWithAPI(api)

	_, err := svc.query(context.Background(), &QueryInput{Table: "orders"})
	assert.Error(t, err, "keyCondition is mandatory")

	out, err := svc.query(context.Background(), &QueryInput{
		Table:            "orders",
		KeyCondition:     "pk = :pk",
		ExpressionValues: map[string]interface{}{":pk": "order#1"},
		Limit:            5,
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, out.Count)
	assert.EqualValues(t, "pk = :pk", aws.ToString(api.queryIn.KeyConditionExpression))
	assert.EqualValues(t, 5, aws.ToInt32(api.queryIn.Limit))
}
