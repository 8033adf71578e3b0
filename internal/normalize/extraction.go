package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"docpilot/internal/domain"
)

// ErrNoExtractedContent is returned when an extraction completion carries no answer.
var ErrNoExtractedContent = errors.New("no content extracted from document")

// DecodeExtraction decodes the JSON object an extraction completion returned
// as its message content and projects it onto the schema's declared
// top-level keys. Declared keys missing from the answer map to nil and
// undeclared keys are dropped. A schema without declared keys keeps the
// answer as-is.
func DecodeExtraction(answer string, schema *domain.ExtractionSchema) (map[string]any, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, ErrNoExtractedContent
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(answer), &decoded); err != nil {
		obj, locErr := LocateJSONObject(answer)
		if locErr != nil {
			return nil, fmt.Errorf("failed to parse extracted content: %w", err)
		}
		if err := json.Unmarshal([]byte(obj), &decoded); err != nil {
			return nil, fmt.Errorf("failed to parse extracted content: %w", err)
		}
	}

	if schema == nil || len(schema.Properties) == 0 {
		return decoded, nil
	}

	projected := make(map[string]any, len(schema.Properties))
	for _, key := range schema.Properties {
		projected[key] = decoded[key]
	}
	return projected, nil
}

// ExtractionFromCompletion combines ChatContent and DecodeExtraction for an
// information-extract response body.
func ExtractionFromCompletion(body []byte, schema *domain.ExtractionSchema) (map[string]any, error) {
	content, _, err := ChatContent(body)
	if err != nil {
		return nil, err
	}
	return DecodeExtraction(content, schema)
}
