package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docpilot/internal/domain"
	"docpilot/internal/port"
	"docpilot/internal/schema"
	"docpilot/internal/service"
	"docpilot/pkg/logger"
)

// RelayHandler fronts the vendor capabilities under /api. Responses are the
// vendor's JSON, and failures use the {error, details} body.
type RelayHandler struct {
	intake     service.FileIntake
	documents  service.DocumentService
	extraction service.ExtractionService
	chat       service.ChatService
}

// NewRelayHandler creates a new RelayHandler.
func NewRelayHandler(
	intake service.FileIntake,
	documents service.DocumentService,
	extraction service.ExtractionService,
	chat service.ChatService,
) *RelayHandler {
	return &RelayHandler{intake: intake, documents: documents, extraction: extraction, chat: chat}
}

// DocumentParse handles POST /api/document-parse
// @Summary Parse a document
// @Description Relays the upload to the document parser and returns its JSON unmodified
// @Tags relay
// @Accept multipart/form-data
// @Produce json
// @Param document formData file true "Document to parse"
// @Success 200 {object} map[string]interface{} "Vendor parse response"
// @Failure 400 {object} RelayError "No document file provided"
// @Failure 413 {object} RelayError "File too large"
// @Failure 500 {object} RelayError "Failed to parse document"
// @Router /document-parse [post]
func (h *RelayHandler) DocumentParse(c *gin.Context) {
	file, err := readUpload(c, h.intake)
	if err != nil {
		relayFailure(c, "Failed to parse document", err)
		return
	}

	body, err := h.documents.Parse(c.Request.Context(), file)
	if err != nil {
		relayFailure(c, "Failed to parse document", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// InformationExtract handles POST /api/information-extract
// @Summary Extract structured information
// @Description Extracts fields described by a JSON Schema, or by a built-in document type
// @Tags relay
// @Accept multipart/form-data
// @Produce json
// @Param document formData file true "Document to extract from"
// @Param schema formData string false "JSON Schema (object) as a string"
// @Param document_type formData string false "Built-in schema: invoice, resume, bank, receipt, contract"
// @Success 200 {object} map[string]interface{} "Vendor extraction response"
// @Failure 400 {object} RelayError "Missing file or schema, or invalid schema"
// @Failure 413 {object} RelayError "File too large"
// @Failure 500 {object} RelayError "Failed to extract information"
// @Router /information-extract [post]
func (h *RelayHandler) InformationExtract(c *gin.Context) {
	file, err := readUpload(c, h.intake)
	if err != nil {
		relayFailure(c, "Failed to extract information", err)
		return
	}

	s, err := schema.Resolve(c.PostForm("schema"), c.PostForm("document_type"))
	if err != nil {
		relayFailure(c, "Failed to extract information", err)
		return
	}

	body, err := h.extraction.Extract(c.Request.Context(), file, s)
	if err != nil {
		relayFailure(c, "Failed to extract information", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// SolarChatRequest is the body of POST /api/solar-chat.
type SolarChatRequest struct {
	Messages        json.RawMessage `json:"messages" swaggertype:"array,object"`
	ReasoningEffort string          `json:"reasoningEffort" example:"medium"`
	Stream          bool            `json:"stream" example:"false"`
}

// SolarChat handles POST /api/solar-chat
// @Summary Reasoning chat completion
// @Description Relays a chat completion. With stream=true the response is server-sent events.
// @Tags relay
// @Accept json
// @Produce json
// @Produce text/event-stream
// @Param request body SolarChatRequest true "Chat request"
// @Success 200 {object} map[string]interface{} "Vendor completion"
// @Failure 400 {object} RelayError "Invalid messages format"
// @Failure 500 {object} RelayError "Failed to chat with Solar LLM"
// @Router /solar-chat [post]
func (h *RelayHandler) SolarChat(c *gin.Context) {
	const label = "Failed to chat with Solar LLM"

	var req SolarChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		relayFailure(c, label, domain.ErrInvalidMessages)
		return
	}
	var messages []domain.ChatMessage
	if len(req.Messages) == 0 || json.Unmarshal(req.Messages, &messages) != nil {
		relayFailure(c, label, domain.ErrInvalidMessages)
		return
	}

	input := port.ChatInput{
		Messages:        messages,
		ReasoningEffort: domain.ReasoningEffort(req.ReasoningEffort),
	}

	if !req.Stream {
		body, err := h.chat.Complete(c.Request.Context(), input)
		if err != nil {
			relayFailure(c, label, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	chunks, err := h.chat.Stream(c.Request.Context(), input)
	if err != nil {
		relayFailure(c, label, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case chunk, ok := <-chunks:
			if !ok {
				_, _ = io.WriteString(c.Writer, "data: [DONE]\n\n")
				c.Writer.Flush()
				return
			}
			if chunk.Err != nil {
				logger.Warn(ctx, "chat stream failed", "error", chunk.Err)
				data, _ := json.Marshal(RelayError{Error: label, Details: chunk.Err.Error()})
				_, _ = fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", data)
				c.Writer.Flush()
				return
			}
			data := chunk.Raw
			if len(data) == 0 {
				data, _ = json.Marshal(deltaChunk(chunk))
			}
			_, _ = fmt.Fprintf(c.Writer, "data: %s\n\n", data)
			c.Writer.Flush()
		}
	}
}

type streamDelta struct {
	Content   string `json:"content,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

type streamChoice struct {
	Delta streamDelta `json:"delta"`
}

func deltaChunk(chunk port.StreamChunk) map[string][]streamChoice {
	return map[string][]streamChoice{
		"choices": {{Delta: streamDelta{Content: chunk.Content, Reasoning: chunk.Reasoning}}},
	}
}
