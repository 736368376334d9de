package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
)

func componentSchema() *Schema {
	return New(
		Field{Name: "componentName", Type: TypeString, Required: true},
		Field{Name: "limit", Type: TypeInteger, Default: 10},
		Field{Name: "variant", Type: TypeString, Enum: []string{"default", "new-york"}},
	)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr string
	}{
		{
			name: "valid input",
			args: map[string]interface{}{"componentName": "button"},
		},
		{
			name:    "missing required field",
			args:    map[string]interface{}{},
			wantErr: "componentName is required",
		},
		{
			name:    "nil args",
			args:    nil,
			wantErr: "componentName is required",
		},
		{
			name:    "wrong type",
			args:    map[string]interface{}{"componentName": 7},
			wantErr: "componentName must be a string",
		},
		{
			name:    "null counts as missing",
			args:    map[string]interface{}{"componentName": nil},
			wantErr: "componentName is required",
		},
		{
			name:    "enum violation",
			args:    map[string]interface{}{"componentName": "button", "variant": "classic"},
			wantErr: `variant must be one of [default, new-york], got "classic"`,
		},
		{
			name:    "fractional integer rejected",
			args:    map[string]interface{}{"componentName": "button", "limit": 1.5},
			wantErr: "limit must be an integer",
		},
		{
			name:    "multiple violations enumerated in declaration order",
			args:    map[string]interface{}{"limit": "many", "variant": "classic"},
			wantErr: `componentName is required; limit must be an integer; variant must be one of [default, new-york], got "classic"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := componentSchema().Validate(tt.args)
			if tt.wantErr == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, errors.CodeInvalidParams, err.Code)
			assert.Equal(t, tt.wantErr, err.Message)
		})
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	out, err := componentSchema().Validate(map[string]interface{}{"componentName": "button"})
	require.Nil(t, err)
	assert.Equal(t, 10, out["limit"])
}

func TestValidateCoercesWholeFloats(t *testing.T) {
	// JSON numbers decode as float64
	out, err := componentSchema().Validate(map[string]interface{}{
		"componentName": "button",
		"limit":         float64(25),
	})
	require.Nil(t, err)
	assert.Equal(t, 25, out["limit"])
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	args := map[string]interface{}{"componentName": "button"}
	_, err := componentSchema().Validate(args)
	require.Nil(t, err)
	_, present := args["limit"]
	assert.False(t, present, "defaults go into the copy, not the caller's map")
}

func TestMarshalJSONPreservesDeclarationOrder(t *testing.T) {
	s := New(
		Field{Name: "zebra", Type: TypeString, Required: true},
		Field{Name: "alpha", Type: TypeString},
	)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	text := string(data)
	assert.Less(t, strings.Index(text, `"zebra"`), strings.Index(text, `"alpha"`),
		"properties must keep declaration order, got %s", text)

	// Round-trip sanity: the output is a valid JSON Schema object
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "object", decoded["type"])
	assert.Equal(t, []interface{}{"zebra"}, decoded["required"])
}
