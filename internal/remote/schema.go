package remote

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResponseJSONSchema returns the JSON-Schema (draft 2020-12 subset) the
// remote extraction service response must satisfy. Anything outside this
// shape is treated as a malformed response.
func BuildResponseJSONSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"quantity":   map[string]any{"type": "integer"},
			"unitPrice":  map[string]any{"type": "number"},
			"totalPrice": map[string]any{"type": "number"},
		},
		"required": []string{"name"},
	}
	data := map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"merchantName": map[string]any{"type": "string"},
			"total":        map[string]any{"type": "number"},
			"items":        map[string]any{"type": "array", "items": item},
			"subtotal":     map[string]any{"type": "number"},
			"tax":          map[string]any{"type": "number"},
			"gratuity":     map[string]any{"type": "number"},
			"locationName": map[string]any{"type": "string"},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"data":    data,
			"error":   map[string]any{"type": "string"},
		},
		"required": []string{"success"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
