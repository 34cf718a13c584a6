package conversion

import (
	"reflect"
	"testing"

	schema "github.com/viant/mcp-protocol/schema"

	"github.com/stretchr/testify/assert"

	"github.com/mcpsuite/aws-mcp/service"
)

type listInput struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix,omitempty"`
}

type listOutput struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
}

func TestBuildSchema(t *testing.T) {
	sig := &service.Signature{
		Name:        "aws_s3-listObjects",
		Description: "List objects",
		Input:       reflect.TypeOf(&listInput{}),
		Output:      reflect.TypeOf(&listOutput{}),
	}
	tool, err := BuildSchema(sig)
	assert.NoError(t, err)
	assert.EqualValues(t, "aws_s3-listObjects", tool.Name)
	assert.Contains(t, tool.InputSchema.Properties, "bucket")
	if assert.NotNil(t, tool.OutputSchema) {
		assert.Contains(t, tool.OutputSchema.Properties, "count")
	}
}

func TestTypeFromInputSchema(t *testing.T) {
	testCases := []struct {
		name         string
		schema       schema.ToolInputSchema
		expFieldInfo map[string]reflect.Kind
	}{
		{
			name: "required string field",
			schema: schema.ToolInputSchema{
				Type: "object",
				Properties: map[string]map[string]interface{}{
					"id": {"type": "string"},
				},
				Required: []string{"id"},
			},
			expFieldInfo: map[string]reflect.Kind{"Id": reflect.String},
		},
		{
			name: "mixed required/optional fields",
			schema: schema.ToolInputSchema{
				Type: "object",
				Properties: map[string]map[string]interface{}{
					"name":   {"type": "string"},
					"active": {"type": "boolean"},
				},
				Required: []string{"name"},
			},
			expFieldInfo: map[string]reflect.Kind{"Name": reflect.String, "Active": reflect.Bool},
		},
		{
			name: "numeric and array fields",
			schema: schema.ToolInputSchema{
				Type: "object",
				Properties: map[string]map[string]interface{}{
					"limit": {"type": "integer"},
					"tags":  {"type": "array", "items": map[string]interface{}{"type": "string"}},
				},
			},
			expFieldInfo: map[string]reflect.Kind{"Limit": reflect.Int64, "Tags": reflect.Slice},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rType, err := TypeFromInputSchema(tc.schema)
			assert.NoError(t, err)
			assert.EqualValues(t, reflect.Struct, rType.Kind())

			for fieldName, kind := range tc.expFieldInfo {
				field, ok := rType.FieldByName(fieldName)
				if assert.True(t, ok, "expected field %s", fieldName) {
					assert.EqualValues(t, kind, field.Type.Kind())
				}
			}
		})
	}
}

func TestTypeFromInputSchemaEmpty(t *testing.T) {
	rType, err := TypeFromInputSchema(schema.ToolInputSchema{Type: "object"})
	assert.NoError(t, err)
	assert.EqualValues(t, reflect.Struct, rType.Kind())
	assert.EqualValues(t, 0, rType.NumField())
}
