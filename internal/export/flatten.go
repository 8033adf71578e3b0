// Package export writes structured results (extractions, analyses) as
// two-column Field,Value sheets in CSV or XLSX.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"docpilot/internal/domain"
)

// Field is one leaf of a flattened JSON object. Path uses dots for object
// keys and [i] for array indexes, e.g. parties[0].name.
type Field struct {
	Path  string
	Value string
}

// Flatten walks a JSON object in document order and returns its leaves.
// Empty objects and arrays are kept as a single field with an empty value.
func Flatten(raw []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExportInput, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, domain.ErrInvalidExportInput
	}

	var fields []Field
	if err := walkObject(dec, "", &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExportInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", domain.ErrInvalidExportInput)
	}
	return fields, nil
}

// walkObject consumes an object body after its opening brace.
func walkObject(dec *json.Decoder, prefix string, out *[]Field) error {
	empty := true
	for dec.More() {
		empty = false
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if err := walkValue(dec, path, out); err != nil {
			return err
		}
	}
	if empty && prefix != "" {
		*out = append(*out, Field{Path: prefix})
	}
	_, err := dec.Token() // closing brace
	return err
}

func walkArray(dec *json.Decoder, prefix string, out *[]Field) error {
	i := 0
	for dec.More() {
		if err := walkValue(dec, prefix+"["+strconv.Itoa(i)+"]", out); err != nil {
			return err
		}
		i++
	}
	if i == 0 {
		*out = append(*out, Field{Path: prefix})
	}
	_, err := dec.Token() // closing bracket
	return err
}

func walkValue(dec *json.Decoder, path string, out *[]Field) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return walkObject(dec, path, out)
		}
		return walkArray(dec, path, out)
	case string:
		*out = append(*out, Field{Path: path, Value: v})
	case json.Number:
		*out = append(*out, Field{Path: path, Value: v.String()})
	case bool:
		*out = append(*out, Field{Path: path, Value: strconv.FormatBool(v)})
	case nil:
		*out = append(*out, Field{Path: path})
	}
	return nil
}
