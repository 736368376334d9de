// Package schema implements the per-tool input schemas checked before a
// handler runs. A schema is an ordered set of recognized fields with
// per-field type, required/optional, and enum constraints; it is attached
// to the tool descriptor at registration time.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
)

// Recognized field types
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// Field describes one recognized input field
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Enum        []string
	Default     interface{}
}

// Schema is a declaration-ordered set of recognized fields
type Schema struct {
	fields []Field
}

// New creates a schema from fields in declaration order
func New(fields ...Field) *Schema {
	return &Schema{fields: fields}
}

// Fields returns the declared fields in order
func (s *Schema) Fields() []Field {
	return s.fields
}

// Validate checks args against the schema. On success it returns a copy of
// the arguments with defaults applied and integers coerced; on failure it
// returns an InvalidParams error whose message enumerates every violated
// field and the reason, in declaration order. A handler never sees a value
// violating its declared schema.
func (s *Schema) Validate(args map[string]interface{}) (map[string]interface{}, *errors.MCPError) {
	if args == nil {
		args = map[string]interface{}{}
	}

	out := make(map[string]interface{}, len(args))
	for k, v := range args {
		out[k] = v
	}

	var violations []string
	for _, f := range s.fields {
		value, present := args[f.Name]
		if !present || value == nil {
			if f.Required {
				violations = append(violations, fmt.Sprintf("%s is required", f.Name))
			} else if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		coerced, err := checkType(f, value)
		if err != "" {
			violations = append(violations, err)
			continue
		}
		out[f.Name] = coerced

		if len(f.Enum) > 0 {
			str, _ := coerced.(string)
			if !contains(f.Enum, str) {
				violations = append(violations, fmt.Sprintf("%s must be one of [%s], got %q",
					f.Name, strings.Join(f.Enum, ", "), str))
			}
		}
	}

	if len(violations) > 0 {
		return nil, errors.InvalidParams("tool", "validate", strings.Join(violations, "; "))
	}
	return out, nil
}

// checkType validates and coerces a single value. JSON numbers arrive as
// float64; whole ones are accepted for integer fields.
func checkType(f Field, value interface{}) (interface{}, string) {
	switch f.Type {
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Sprintf("%s must be a string", f.Name)
		}
		return str, ""
	case TypeInteger:
		switch n := value.(type) {
		case int:
			return n, ""
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Sprintf("%s must be an integer", f.Name)
			}
			return int(n), ""
		default:
			return nil, fmt.Sprintf("%s must be an integer", f.Name)
		}
	case TypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Sprintf("%s must be a boolean", f.Name)
		}
		return b, ""
	default:
		return value, ""
	}
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// MarshalJSON renders the schema as a standard JSON Schema object with
// properties in declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"object","properties":{`)

	for i, f := range s.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		prop := map[string]interface{}{"type": f.Type}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		if len(f.Enum) > 0 {
			prop["enum"] = f.Enum
		}
		if f.Default != nil {
			prop["default"] = f.Default
		}
		encoded, err := json.Marshal(prop)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')

	var required []string
	for _, f := range s.fields {
		if f.Required {
			required = append(required, f.Name)
		}
	}
	if len(required) > 0 {
		buf.WriteString(`,"required":`)
		encoded, err := json.Marshal(required)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
