package port

import (
	"context"
	"encoding/json"
	"net/http"

	"docpilot/internal/domain"
)

// VendorRequest is a fully encoded, ready-to-send vendor call.
type VendorRequest struct {
	Capability domain.Capability
	Method     string
	URL        string
	Header     http.Header
	Body       []byte
}

// StreamChunk is one partial-content event from a streaming chat completion.
// The final chunk on failure carries Err.
type StreamChunk struct {
	Content   string
	Reasoning string
	Raw       json.RawMessage
	Err       error
}

// ChatInput carries the parameters of a reasoning-chat request.
type ChatInput struct {
	Messages        []domain.ChatMessage
	ReasoningEffort domain.ReasoningEffort
	Stream          bool
}

// RequestEncoder builds vendor requests without sending them.
type RequestEncoder interface {
	EncodeDocumentParse(file *domain.UploadedFile) (*VendorRequest, error)
	EncodeInformationExtract(file *domain.UploadedFile, schema *domain.ExtractionSchema) (*VendorRequest, error)
	EncodeChat(input ChatInput) (*VendorRequest, error)
}

// VendorGateway performs a single attempt against the vendor API.
type VendorGateway interface {
	Call(ctx context.Context, req *VendorRequest) (json.RawMessage, error)
	Stream(ctx context.Context, req *VendorRequest) (<-chan StreamChunk, error)
}
