package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFile        = errors.New("no document file provided")
	ErrEmptyFile          = errors.New("document file is empty")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrMissingSchema      = errors.New("no schema provided")
	ErrInvalidSchema      = errors.New("invalid extraction schema")
	ErrUnknownSchema      = errors.New("unknown built-in schema")
	ErrInvalidMessages    = errors.New("invalid messages format")
	ErrInvalidEffort      = errors.New("invalid reasoning effort")
	ErrEmptyMessage       = errors.New("message text is empty")
	ErrTransport          = errors.New("vendor request failed")
	ErrNoTextExtracted    = errors.New("no text content found in document")
	ErrAnalysisParse      = errors.New("analysis answer could not be parsed")
	ErrBusy               = errors.New("a request is already in flight for this session")
	ErrInvalidTransition  = errors.New("invalid processing stage transition")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnsupportedExport  = errors.New("unsupported export format")
	ErrInvalidExportInput = errors.New("export input must be a JSON object")
)

// FileTooLargeError reports the configured limit and the actual size of a rejected upload.
type FileTooLargeError struct {
	Limit  int64
	Actual int64
}

// Actual is zero or negative when the size is unknown, as with chunked uploads.
func (e *FileTooLargeError) Error() string {
	if e.Actual <= 0 {
		return fmt.Sprintf("file is too large: exceeds the %d byte limit (%d MB)", e.Limit, e.Limit/(1024*1024))
	}
	return fmt.Sprintf("file is too large: %d bytes exceeds the %d byte limit (%d MB)",
		e.Actual, e.Limit, e.Limit/(1024*1024))
}

func (e *FileTooLargeError) Is(target error) bool {
	return target == ErrFileTooLarge
}

// IsValidation reports whether err is an input error the user must fix.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrMissingSchema),
		errors.Is(err, ErrInvalidSchema),
		errors.Is(err, ErrUnknownSchema),
		errors.Is(err, ErrInvalidMessages),
		errors.Is(err, ErrInvalidEffort),
		errors.Is(err, ErrEmptyMessage):
		return true
	}
	return false
}
