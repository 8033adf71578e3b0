package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docpilot/internal/domain"
	"docpilot/internal/upstage"
	"docpilot/pkg/logger"
)

// APIResponse is the standard envelope for /api/v1 responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// RelayError is the error body of the relay endpoints under /api.
type RelayError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var transport *upstage.TransportError
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE", "no document file provided"
	case errors.Is(err, domain.ErrEmptyFile):
		return http.StatusBadRequest, "EMPTY_FILE", "document file is empty"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrMissingSchema):
		return http.StatusBadRequest, "MISSING_SCHEMA", "no schema provided"
	case errors.Is(err, domain.ErrInvalidSchema):
		return http.StatusBadRequest, "INVALID_SCHEMA", "schema is not a valid extraction schema"
	case errors.Is(err, domain.ErrUnknownSchema):
		return http.StatusBadRequest, "UNKNOWN_SCHEMA", "unknown built-in schema"
	case errors.Is(err, domain.ErrInvalidMessages):
		return http.StatusBadRequest, "INVALID_MESSAGES", "invalid messages format"
	case errors.Is(err, domain.ErrInvalidEffort):
		return http.StatusBadRequest, "INVALID_REASONING_EFFORT", "reasoning effort must be low, medium or high"
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest, "EMPTY_MESSAGE", "message text is empty"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, domain.ErrBusy):
		return http.StatusConflict, "BUSY", "a request is already in flight for this session"
	case errors.Is(err, domain.ErrUnsupportedExport):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrInvalidExportInput):
		return http.StatusBadRequest, "INVALID_EXPORT_INPUT", "export input must be a JSON object"
	case errors.Is(err, domain.ErrNoTextExtracted):
		return http.StatusUnprocessableEntity, "NO_TEXT_EXTRACTED", "no text content found in document; it may be empty or in an unsupported format"
	case errors.As(err, &transport) && transport.RateLimited():
		return http.StatusTooManyRequests, "VENDOR_RATE_LIMITED", "document service rate limit reached; try again later"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "VENDOR_ERROR", "document service request failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Vendor errors carry the vendor's message as details.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", "error", err)
	}
	setRetryAfter(c, err)

	apiErr := &APIError{Code: code, Message: msg}
	if status != http.StatusInternalServerError {
		apiErr.Details = err.Error()
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

// relayFailure sends the relay error body. Input errors keep their own
// status; everything else is reported as a 500 with label as the error.
func relayFailure(c *gin.Context, label string, err error) {
	var tooLarge *domain.FileTooLargeError
	switch {
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, RelayError{Error: "File too large", Details: tooLarge.Error()})
	case errors.Is(err, domain.ErrMissingFile):
		c.JSON(http.StatusBadRequest, RelayError{Error: "No document file provided"})
	case errors.Is(err, domain.ErrMissingSchema):
		c.JSON(http.StatusBadRequest, RelayError{Error: "No schema provided"})
	case errors.Is(err, domain.ErrInvalidMessages):
		c.JSON(http.StatusBadRequest, RelayError{Error: "Invalid messages format", Details: err.Error()})
	case errors.Is(err, domain.ErrInvalidSchema), errors.Is(err, domain.ErrUnknownSchema):
		c.JSON(http.StatusBadRequest, RelayError{Error: "Invalid schema", Details: err.Error()})
	case errors.Is(err, domain.ErrInvalidEffort):
		c.JSON(http.StatusBadRequest, RelayError{Error: "Invalid reasoning effort", Details: err.Error()})
	case errors.Is(err, domain.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, RelayError{Error: "Document file is empty"})
	default:
		logger.Error(c.Request.Context(), label, "error", err)
		setRetryAfter(c, err)
		c.JSON(http.StatusInternalServerError, RelayError{Error: label, Details: err.Error()})
	}
}

func setRetryAfter(c *gin.Context, err error) {
	var transport *upstage.TransportError
	if errors.As(err, &transport) && transport.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(transport.RetryAfter.Seconds())))
	}
}
