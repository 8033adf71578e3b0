package service

import (
	"context"
	"encoding/json"
	"fmt"

	"docpilot/internal/domain"
	"docpilot/internal/normalize"
	"docpilot/pkg/logger"
)

// DocumentService relays document parsing and normalizes the result to text.
type DocumentService interface {
	// Parse returns the vendor's parse response for the configured parse mode.
	Parse(ctx context.Context, file *domain.UploadedFile) (json.RawMessage, error)
	// ParseText parses the document and reduces the response to plain text.
	ParseText(ctx context.Context, file *domain.UploadedFile) (*domain.NormalizedDocument, error)
}

type documentService struct {
	parser DocumentParser
	mode   domain.ParseMode
}

// NewDocumentService creates a DocumentService for the given parse mode.
func NewDocumentService(mode domain.ParseMode, deps ParseModeDeps) (DocumentService, error) {
	if mode == "" {
		mode = domain.ParseModeDigitize
	}
	parser, err := NewDocumentParser(mode, deps)
	if err != nil {
		return nil, err
	}
	return &documentService{parser: parser, mode: mode}, nil
}

func (s *documentService) Parse(ctx context.Context, file *domain.UploadedFile) (json.RawMessage, error) {
	if file == nil || len(file.Content) == 0 {
		return nil, domain.ErrMissingFile
	}
	logger.Info(ctx, "parsing document", "file", file.Name, "mode", s.mode)

	body, err := s.parser.Parse(ctx, file)
	if err != nil {
		logger.Error(ctx, "document parse failed", "file", file.Name, "error", err)
		return nil, err
	}
	return body, nil
}

func (s *documentService) ParseText(ctx context.Context, file *domain.UploadedFile) (*domain.NormalizedDocument, error) {
	body, err := s.Parse(ctx, file)
	if err != nil {
		return nil, err
	}
	doc, err := normalize.ExtractText(body)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", file.Name, err)
	}
	logger.Debug(ctx, "document text normalized",
		"file", file.Name,
		"strategy", doc.Strategy,
		"chars", len(doc.PlainText),
	)
	return &doc, nil
}
