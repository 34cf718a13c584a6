// Package dynamodb exposes AWS DynamoDB table and item operations as tools.
// Items cross the tool boundary as plain JSON objects; attribute-value
// encoding stays an internal concern of this package.
package dynamodb

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Name is the registry key of this service.
const Name = "aws/dynamodb"

// API is the subset of the DynamoDB client the tools call.
type API interface {
	ListTables(ctx context.Context, params *awsdynamodb.ListTablesInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ListTablesOutput, error)
	DescribeTable(ctx context.Context, params *awsdynamodb.DescribeTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DescribeTableOutput, error)
	GetItem(ctx context.Context, params *awsdynamodb.GetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error)
}

// Service implements service.Service for DynamoDB.
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
		s.api = awsdynamodb.NewFromConfig(cfg)
	})
	return s.api, s.apiErr
}

type ListTablesInput struct {
	Limit int32 `json:"limit,omitempty"`
}

type ListTablesOutput struct {
	Tables []string `json:"tables"`
	Count  int      `json:"count"`
}

type KeyElement struct {
	Attribute string `json:"attribute"`
	KeyType   string `json:"keyType"`
}

type TableDescription struct {
	Name      string       `json:"name"`
	Status    string       `json:"status"`
	ItemCount int64        `json:"itemCount"`
	SizeBytes int64        `json:"sizeBytes"`
	KeySchema []KeyElement `json:"keySchema"`
}

type DescribeTableInput struct {
	Table string `json:"table"`
}

type DescribeTableOutput struct {
	Table TableDescription `json:"table"`
}

type GetItemInput struct {
	Table string                 `json:"table"`
	Key   map[string]interface{} `json:"key"`
}

type GetItemOutput struct {
	Item  map[string]interface{} `json:"item,omitempty"`
	Found bool                   `json:"found"`
}

type PutItemInput struct {
	Table string                 `json:"table"`
	Item  map[string]interface{} `json:"item"`
}

type PutItemOutput struct {
	Stored bool `json:"stored"`
}

type DeleteItemInput struct {
	Table string                 `json:"table"`
	Key   map[string]interface{} `json:"key"`
}

type DeleteItemOutput struct {
	Deleted bool `json:"deleted"`
}

type QueryInput struct {
	Table            string                 `json:"table"`
	KeyCondition     string                 `json:"keyCondition"`
	ExpressionValues map[string]interface{} `json:"expressionValues,omitempty"`
	ExpressionNames  map[string]string      `json:"expressionNames,omitempty"`
	IndexName        string                 `json:"indexName,omitempty"`
	Limit            int32                  `json:"limit,omitempty"`
	ScanForward      *bool                  `json:"scanForward,omitempty"`
}

type QueryOutput struct {
	Items []map[string]interface{} `json:"items"`
	Count int                      `json:"count"`
}

func (s *Service) methods() []service.Method {
	return []service.Method{
		service.NewMethod("listTables",
			"List DynamoDB table names",
			s.listTables),
		service.NewMethod("describeTable",
			"Describe a DynamoDB table: status, size and key schema",
			s.describeTable),
		service.NewMethod("getItem",
			"Fetch one item by primary key; the key is a plain JSON object",
			s.getItem),
		service.NewMethod("putItem",
			"Store a JSON object as a DynamoDB item",
			s.putItem),
		service.NewMethod("deleteItem",
			"Delete one item by primary key",
			s.deleteItem),
		service.NewMethod("query",
			"Query a table or index with a key condition expression, e.g. 'pk = :pk'",
			s.query),
	}
}

func (s *Service) listTables(ctx context.Context, in *ListTablesInput) (*ListTablesOutput, error) {
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awsdynamodb.ListTablesInput{}
	if in.Limit > 0 {
		params.Limit = aws.Int32(in.Limit)
	}
	res, err := cli.ListTables(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("dynamodb.ListTables", err)
	}
	return &ListTablesOutput{Tables: res.TableNames, Count: len(res.TableNames)}, nil
}

func (s *Service) describeTable(ctx context.Context, in *DescribeTableInput) (*DescribeTableOutput, error) {
	if in.Table == "" {
		return nil, fmt.Errorf("table is required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	res, err := cli.DescribeTable(ctx, &awsdynamodb.DescribeTableInput{TableName: aws.String(in.Table)})
	if err != nil {
		return nil, awscfg.APIError("dynamodb.DescribeTable", err)
	}
	desc := TableDescription{
		Name:      aws.ToString(res.Table.TableName),
		Status:    string(res.Table.TableStatus),
		ItemCount: aws.ToInt64(res.Table.ItemCount),
		SizeBytes: aws.ToInt64(res.Table.TableSizeBytes),
	}
	for _, k := range res.Table.KeySchema {
		desc.KeySchema = append(desc.KeySchema, KeyElement{
			Attribute: aws.ToString(k.AttributeName),
			KeyType:   string(k.KeyType),
		})
	}
	return &DescribeTableOutput{Table: desc}, nil
}

func (s *Service) getItem(ctx context.Context, in *GetItemInput) (*GetItemOutput, error) {
	if in.Table == "" || len(in.Key) == 0 {
		return nil, fmt.Errorf("table and key are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	key, err := attributevalue.MarshalMap(in.Key)
	if err != nil {
		return nil, fmt.Errorf("encode key: %w", err)
	}
	res, err := cli.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(in.Table),
		Key:       key,
	})
	if err != nil {
		return nil, awscfg.APIError("dynamodb.GetItem", err)
	}
	out := &GetItemOutput{}
	if len(res.Item) > 0 {
		item := map[string]interface{}{}
		if err := attributevalue.UnmarshalMap(res.Item, &item); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out.Item = item
		out.Found = true
	}
	return out, nil
}

func (s *Service) putItem(ctx context.Context, in *PutItemInput) (*PutItemOutput, error) {
	if in.Table == "" || len(in.Item) == 0 {
		return nil, fmt.Errorf("table and item are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	item, err := attributevalue.MarshalMap(in.Item)
	if err != nil {
		return nil, fmt.Errorf("encode item: %w", err)
	}
	if _, err = cli.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(in.Table),
		Item:      item,
	}); err != nil {
		return nil, awscfg.APIError("dynamodb.PutItem", err)
	}
	return &PutItemOutput{Stored: true}, nil
}

func (s *Service) deleteItem(ctx context.Context, in *DeleteItemInput) (*DeleteItemOutput, error) {
	if in.Table == "" || len(in.Key) == 0 {
		return nil, fmt.Errorf("table and key are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	key, err := attributevalue.MarshalMap(in.Key)
	if err != nil {
		return nil, fmt.Errorf("encode key: %w", err)
	}
	if _, err = cli.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(in.Table),
		Key:       key,
	}); err != nil {
		return nil, awscfg.APIError("dynamodb.DeleteItem", err)
	}
	return &DeleteItemOutput{Deleted: true}, nil
}

func (s *Service) query(ctx context.Context, in *QueryInput) (*QueryOutput, error) {
	if in.Table == "" || in.KeyCondition == "" {
		return nil, fmt.Errorf("table and keyCondition are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awsdynamodb.QueryInput{
		TableName:              aws.String(in.Table),
		KeyConditionExpression: aws.String(in.KeyCondition),
		ScanIndexForward:       in.ScanForward,
	}
	if len(in.ExpressionValues) > 0 {
		values, err := attributevalue.MarshalMap(in.ExpressionValues)
		if err != nil {
			return nil, fmt.Errorf("encode expression values: %w", err)
		}
		params.ExpressionAttributeValues = values
	}
	if len(in.ExpressionNames) > 0 {
		params.ExpressionAttributeNames = in.ExpressionNames
	}
	if in.IndexName != "" {
		params.IndexName = aws.String(in.IndexName)
	}
	if in.Limit > 0 {
		params.Limit = aws.Int32(in.Limit)
	}
	res, err := cli.Query(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("dynamodb.Query", err)
	}
	out := &QueryOutput{Items: make([]map[string]interface{}, 0, len(res.Items))}
	for _, raw := range res.Items {
		item := map[string]interface{}{}
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out.Items = append(out.Items, item)
	}
	out.Count = len(out.Items)
	return out, nil
}
