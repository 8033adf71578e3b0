package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"docpilot/internal/domain"
)

// Built-in schema names.
const (
	Invoice  = "invoice"
	Resume   = "resume"
	Bank     = "bank"
	Receipt  = "receipt"
	Contract = "contract"
)

// ContractResponseName is the response_format schema name used for contract extraction.
const ContractResponseName = "contract_extraction_schema"

var builtinSources = map[string]string{
	Invoice: `{
  "type": "object",
  "properties": {
    "invoice_number": {"type": "string", "description": "Invoice number"},
    "date": {"type": "string", "description": "Invoice date"},
    "vendor_name": {"type": "string", "description": "Vendor company name"},
    "total_amount": {"type": "number", "description": "Total amount"},
    "line_items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "quantity": {"type": "number"},
          "unit_price": {"type": "number"}
        }
      }
    }
  }
}`,
	Resume: `{
  "type": "object",
  "properties": {
    "name": {"type": "string", "description": "Full name"},
    "email": {"type": "string", "description": "Email address"},
    "phone": {"type": "string", "description": "Phone number"},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "company": {"type": "string"},
          "position": {"type": "string"},
          "duration": {"type": "string"}
        }
      }
    },
    "skills": {"type": "array", "items": {"type": "string"}}
  }
}`,
	Bank: `{
  "type": "object",
  "properties": {
    "bank_name": {"type": "string", "description": "The name of bank in bank statement"}
  }
}`,
	Receipt: `{
  "type": "object",
  "properties": {
    "merchant_name": {"type": "string", "description": "Merchant name"},
    "date": {"type": "string", "description": "Purchase date"},
    "total_amount": {"type": "number", "description": "Total amount"},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "price": {"type": "number"}
        }
      }
    }
  }
}`,
}

var (
	catalogOnce sync.Once
	catalog     map[string]*domain.ExtractionSchema
	catalogErr  error
)

func loadCatalog() (map[string]*domain.ExtractionSchema, error) {
	catalogOnce.Do(func() {
		out := make(map[string]*domain.ExtractionSchema, len(builtinSources)+1)
		for name, src := range builtinSources {
			s, err := Parse(name, []byte(src))
			if err != nil {
				catalogErr = fmt.Errorf("built-in schema %s: %w", name, err)
				return
			}
			out[name] = s
		}
		contract, err := ContractSchema()
		if err != nil {
			catalogErr = err
			return
		}
		out[Contract] = contract
		catalog = out
	})
	return catalog, catalogErr
}

// Builtin returns the named built-in schema. The returned value must not be modified.
func Builtin(name string) (*domain.ExtractionSchema, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	s, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSchema, name)
	}
	return s, nil
}

// BuiltinNames lists the built-in schema names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinSources)+1)
	for name := range builtinSources {
		names = append(names, name)
	}
	names = append(names, Contract)
	sort.Strings(names)
	return names
}

// Resolve picks the schema for an extraction request. A caller schema wins
// over a built-in document type.
func Resolve(raw, documentType string) (*domain.ExtractionSchema, error) {
	if strings.TrimSpace(raw) != "" {
		return Parse("custom", []byte(raw))
	}
	if documentType = strings.TrimSpace(documentType); documentType != "" {
		return Builtin(strings.ToLower(documentType))
	}
	return nil, domain.ErrMissingSchema
}
