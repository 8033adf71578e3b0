package service

import (
	"context"
	"encoding/json"
	"fmt"

	"docpilot/internal/domain"
	"docpilot/internal/normalize"
	"docpilot/internal/port"
	"docpilot/internal/schema"
	"docpilot/pkg/logger"
)

// DocumentParser turns an accepted upload into a document-parse response body.
type DocumentParser interface {
	Parse(ctx context.Context, file *domain.UploadedFile) (json.RawMessage, error)
}

// ParseModeDeps carries what a parse mode needs to reach the vendor.
type ParseModeDeps struct {
	Encoder port.RequestEncoder
	Gateway port.VendorGateway
}

// ParseModeFactory creates a DocumentParser for one parse mode.
type ParseModeFactory func(deps ParseModeDeps) (DocumentParser, error)

var parseModes = map[domain.ParseMode]ParseModeFactory{}

// RegisterParseMode registers a parse mode factory by name.
func RegisterParseMode(mode domain.ParseMode, factory ParseModeFactory) {
	parseModes[mode] = factory
}

// NewDocumentParser creates the DocumentParser registered for mode.
func NewDocumentParser(mode domain.ParseMode, deps ParseModeDeps) (DocumentParser, error) {
	factory, ok := parseModes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown parse mode: %s", mode)
	}
	return factory(deps)
}

func init() {
	RegisterParseMode(domain.ParseModeDigitize, func(deps ParseModeDeps) (DocumentParser, error) {
		return &digitizeParser{deps: deps}, nil
	})
	RegisterParseMode(domain.ParseModeExtract, func(deps ParseModeDeps) (DocumentParser, error) {
		s, err := schema.Builtin(schema.Contract)
		if err != nil {
			return nil, err
		}
		return &extractParser{deps: deps, schema: s}, nil
	})
}

// digitizeParser relays the document-digitization response unmodified.
type digitizeParser struct {
	deps ParseModeDeps
}

func (p *digitizeParser) Parse(ctx context.Context, file *domain.UploadedFile) (json.RawMessage, error) {
	req, err := p.deps.Encoder.EncodeDocumentParse(file)
	if err != nil {
		return nil, err
	}
	return p.deps.Gateway.Call(ctx, req)
}

// extractParser runs contract-schema extraction and reshapes the answer into
// the document-parse shape {elements, content, extractedData}.
type extractParser struct {
	deps   ParseModeDeps
	schema *domain.ExtractionSchema
}

const noTextPlaceholder = "No text content extracted"

type textContent struct {
	Text string `json:"text"`
}

type textElement struct {
	Content textContent `json:"content"`
}

type extractedDocument struct {
	Elements      []textElement  `json:"elements"`
	Content       textContent    `json:"content"`
	ExtractedData map[string]any `json:"extractedData"`
}

func (p *extractParser) Parse(ctx context.Context, file *domain.UploadedFile) (json.RawMessage, error) {
	req, err := p.deps.Encoder.EncodeInformationExtract(file, p.schema)
	if err != nil {
		return nil, err
	}
	body, err := p.deps.Gateway.Call(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := normalize.ExtractionFromCompletion(body, p.schema)
	if err != nil {
		return nil, err
	}
	if err := schema.Conforms(p.schema, data); err != nil {
		logger.Warn(ctx, "contract extraction does not match schema", "error", err)
	}

	text, _ := data["documentText"].(string)
	if text == "" {
		text = noTextPlaceholder
	}

	out, err := json.Marshal(extractedDocument{
		Elements:      []textElement{{Content: textContent{Text: text}}},
		Content:       textContent{Text: text},
		ExtractedData: data,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling parse result: %w", err)
	}
	return out, nil
}
