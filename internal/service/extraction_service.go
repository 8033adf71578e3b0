package service

import (
	"context"
	"encoding/json"

	"docpilot/internal/domain"
	"docpilot/internal/normalize"
	"docpilot/internal/port"
	"docpilot/pkg/logger"
)

// ExtractionService relays schema-driven information extraction.
type ExtractionService interface {
	// Extract returns the vendor's extraction response unmodified.
	Extract(ctx context.Context, file *domain.UploadedFile, schema *domain.ExtractionSchema) (json.RawMessage, error)
	// ExtractFields returns the extracted object projected onto the schema's declared keys.
	ExtractFields(ctx context.Context, file *domain.UploadedFile, schema *domain.ExtractionSchema) (map[string]any, error)
}

type extractionService struct {
	encoder port.RequestEncoder
	gateway port.VendorGateway
}

// NewExtractionService creates an ExtractionService.
func NewExtractionService(encoder port.RequestEncoder, gateway port.VendorGateway) ExtractionService {
	return &extractionService{encoder: encoder, gateway: gateway}
}

func (s *extractionService) Extract(ctx context.Context, file *domain.UploadedFile, schema *domain.ExtractionSchema) (json.RawMessage, error) {
	req, err := s.encoder.EncodeInformationExtract(file, schema)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "extracting information", "file", file.Name, "schema", schema.Name)

	body, err := s.gateway.Call(ctx, req)
	if err != nil {
		logger.Error(ctx, "information extraction failed", "file", file.Name, "error", err)
		return nil, err
	}
	return body, nil
}

func (s *extractionService) ExtractFields(ctx context.Context, file *domain.UploadedFile, schema *domain.ExtractionSchema) (map[string]any, error) {
	body, err := s.Extract(ctx, file, schema)
	if err != nil {
		return nil, err
	}
	return normalize.ExtractionFromCompletion(body, schema)
}
