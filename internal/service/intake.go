package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"docpilot/internal/config"
	"docpilot/internal/domain"
	"docpilot/pkg/logger"
)

// FileInput is the DTO for an incoming upload. Size is the declared size, or
// a negative value when unknown.
type FileInput struct {
	Name         string
	DeclaredType string
	Size         int64
	Body         io.Reader
}

// FileIntake validates uploads before anything is sent to the vendor.
type FileIntake interface {
	Accept(ctx context.Context, input FileInput) (*domain.UploadedFile, error)
	MaxBytes() int64
}

type fileIntake struct {
	maxBytes int64
}

// NewFileIntake creates a FileIntake enforcing the configured size limit.
func NewFileIntake(cfg *config.UploadConfig) FileIntake {
	maxBytes := cfg.MaxBytes()
	if maxBytes <= 0 {
		maxBytes = 50 * 1024 * 1024
	}
	return &fileIntake{maxBytes: maxBytes}
}

func (s *fileIntake) MaxBytes() int64 {
	return s.maxBytes
}

// Accept reads the upload into memory. Oversized files are rejected from the
// declared size when known and otherwise while reading, so at most
// maxBytes+1 bytes are ever buffered. The type allow-list is advisory only.
func (s *fileIntake) Accept(ctx context.Context, input FileInput) (*domain.UploadedFile, error) {
	if input.Body == nil {
		return nil, domain.ErrMissingFile
	}
	if input.Size > s.maxBytes {
		return nil, &domain.FileTooLargeError{Limit: s.maxBytes, Actual: input.Size}
	}

	content, err := io.ReadAll(io.LimitReader(input.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(content)) > s.maxBytes {
		actual := input.Size
		if actual < int64(len(content)) {
			actual = int64(len(content))
		}
		return nil, &domain.FileTooLargeError{Limit: s.maxBytes, Actual: actual}
	}
	if len(content) == 0 {
		return nil, domain.ErrEmptyFile
	}

	contentType := baseMediaType(input.DeclaredType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = baseMediaType(mimetype.Detect(content).String())
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Name), "."))
	_, advisory := domain.AdvisoryExtensions[ext]

	file := &domain.UploadedFile{
		Name:        input.Name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
		Advisory:    advisory,
	}

	logger.Info(ctx, "upload accepted",
		"file", file.Name,
		"content_type", file.ContentType,
		"size", file.Size,
		"advisory_type", advisory,
	)
	return file, nil
}

func baseMediaType(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}
