package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Relay Request Types ---

// InformationExtractForm documents the multipart fields of POST /api/information-extract.
type InformationExtractForm struct {
	Schema       string `json:"schema" example:"{\"type\":\"object\",\"properties\":{\"invoice_number\":{\"type\":\"string\"}}}"`
	DocumentType string `json:"document_type" example:"invoice"`
}

// ChatMessageBody is one element of SolarChatRequest.Messages.
type ChatMessageBody struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"Summarize this lease."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

// ReadinessResponse is returned by GET /readyz.
type ReadinessResponse struct {
	Status string            `json:"status" example:"ready"`
	Checks map[string]string `json:"checks"`
}
