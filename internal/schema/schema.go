// Package schema holds the built-in extraction schemas and validates
// caller-supplied ones before they reach the vendor.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"docpilot/internal/domain"
)

// Vendor guidance for schema size.
const (
	MaxSchemaChars = 10000
	MaxProperties  = 50
)

// Parse validates a caller-supplied JSON Schema and records its top-level
// property names in declaration order.
func Parse(name string, raw []byte) (*domain.ExtractionSchema, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, domain.ErrMissingSchema
	}
	if n := len([]rune(string(raw))); n > MaxSchemaChars {
		return nil, fmt.Errorf("%w: schema is %d characters; limit is %d", domain.ErrInvalidSchema, n, MaxSchemaChars)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: schema must be a JSON object: %v", domain.ErrInvalidSchema, err)
	}

	if t, ok := doc["type"]; ok {
		var typ string
		if err := json.Unmarshal(t, &typ); err != nil || typ != "object" {
			return nil, fmt.Errorf("%w: top-level type must be \"object\"", domain.ErrInvalidSchema)
		}
	}

	var props []string
	if p, ok := doc["properties"]; ok {
		keys, err := objectKeys(p)
		if err != nil {
			return nil, fmt.Errorf("%w: properties must be an object", domain.ErrInvalidSchema)
		}
		props = keys
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
	}
	if n := countProperties(tree); n > MaxProperties {
		return nil, fmt.Errorf("%w: schema declares %d properties; limit is %d", domain.ErrInvalidSchema, n, MaxProperties)
	}

	if _, err := compile(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
	}

	return &domain.ExtractionSchema{
		Name:       name,
		Raw:        json.RawMessage(compact.Bytes()),
		Properties: props,
	}, nil
}

// Conforms validates an extracted value against the schema.
func Conforms(s *domain.ExtractionSchema, value any) error {
	compiled, err := compile(s.Raw)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
	}
	// Round-trip so Go types become the generic JSON types the validator expects.
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("unmarshaling value: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("value does not match schema: %w", err)
	}
	return nil
}

func compile(raw []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction_schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("extraction_schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("not an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// countProperties counts every property declared anywhere in the schema tree.
func countProperties(node any) int {
	switch v := node.(type) {
	case map[string]any:
		n := 0
		if props, ok := v["properties"].(map[string]any); ok {
			n += len(props)
		}
		for key, child := range v {
			if key == "properties" {
				if props, ok := child.(map[string]any); ok {
					for _, p := range props {
						n += countProperties(p)
					}
				}
				continue
			}
			n += countProperties(child)
		}
		return n
	case []any:
		n := 0
		for _, child := range v {
			n += countProperties(child)
		}
		return n
	}
	return 0
}
