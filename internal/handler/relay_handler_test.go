package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docpilot/internal/domain"
	"docpilot/internal/handler"
	"docpilot/internal/port"
	"docpilot/internal/upstage"
	"docpilot/mocks"
)

type relayMocks struct {
	docs       *mocks.MockDocumentService
	extraction *mocks.MockExtractionService
	chat       *mocks.MockChatService
}

func newRelayHandler(maxMB int64) (*handler.RelayHandler, relayMocks) {
	m := relayMocks{
		docs:       new(mocks.MockDocumentService),
		extraction: new(mocks.MockExtractionService),
		chat:       new(mocks.MockChatService),
	}
	return handler.NewRelayHandler(testIntake(maxMB), m.docs, m.extraction, m.chat), m
}

// --- DocumentParse ---

func TestRelayHandler_DocumentParse_Success(t *testing.T) {
	h, m := newRelayHandler(50)
	vendor := json.RawMessage(`{"api":"2.0","content":{"html":"<p>Lease</p>"},"elements":[]}`)

	m.docs.On("Parse", mock.Anything, mock.MatchedBy(func(f *domain.UploadedFile) bool {
		return f.Name == "lease.pdf" && f.ContentType == "application/pdf" && bytes.Equal(f.Content, pdfBytes)
	})).Return(vendor, nil)

	c, w := newContext(multipartRequest(t, "/api/document-parse", "lease.pdf", pdfBytes, nil))
	h.DocumentParse(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(vendor), w.Body.String())
	m.docs.AssertExpectations(t)
}

func TestRelayHandler_DocumentParse_MissingFile(t *testing.T) {
	h, m := newRelayHandler(50)

	c, w := newContext(multipartRequest(t, "/api/document-parse", "", nil, map[string]string{"other": "x"}))
	h.DocumentParse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No document file provided", decodeRelay(t, w).Error)
	m.docs.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestRelayHandler_DocumentParse_TooLarge(t *testing.T) {
	h, m := newRelayHandler(1)
	big := bytes.Repeat([]byte("a"), 3<<20)

	c, w := newContext(multipartRequest(t, "/api/document-parse", "big.pdf", big, nil))
	h.DocumentParse(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	body := decodeRelay(t, w)
	assert.Equal(t, "File too large", body.Error)
	assert.Contains(t, body.Details, "1 MB")
	m.docs.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestRelayHandler_DocumentParse_TooLargeChunked(t *testing.T) {
	h, m := newRelayHandler(1)
	req := multipartRequest(t, "/api/document-parse", "big.pdf", bytes.Repeat([]byte("a"), 3<<20), nil)
	req.ContentLength = -1

	c, w := newContext(req)
	h.DocumentParse(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	body := decodeRelay(t, w)
	assert.Contains(t, body.Details, "1 MB")
	assert.NotContains(t, body.Details, "-1")
	m.docs.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestRelayHandler_DocumentParse_VendorFailure(t *testing.T) {
	h, m := newRelayHandler(50)
	m.docs.On("Parse", mock.Anything, mock.Anything).
		Return(nil, &upstage.TransportError{Capability: domain.CapabilityDocumentParse, StatusCode: 500, Body: "boom"})

	c, w := newContext(multipartRequest(t, "/api/document-parse", "lease.pdf", pdfBytes, nil))
	h.DocumentParse(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeRelay(t, w)
	assert.Equal(t, "Failed to parse document", body.Error)
	assert.Equal(t, "API request failed: 500 - boom", body.Details)
}

// --- InformationExtract ---

func TestRelayHandler_InformationExtract_BuiltinType(t *testing.T) {
	h, m := newRelayHandler(50)
	vendor := json.RawMessage(`{"choices":[{"message":{"content":"{\"invoice_number\":\"INV-1\"}"}}]}`)

	m.extraction.On("Extract", mock.Anything, mock.Anything, mock.MatchedBy(func(s *domain.ExtractionSchema) bool {
		return s.Name == "invoice"
	})).Return(vendor, nil)

	req := multipartRequest(t, "/api/information-extract", "inv.pdf", pdfBytes, map[string]string{"document_type": "Invoice"})
	c, w := newContext(req)
	h.InformationExtract(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(vendor), w.Body.String())
	m.extraction.AssertExpectations(t)
}

func TestRelayHandler_InformationExtract_CallerSchemaWins(t *testing.T) {
	h, m := newRelayHandler(50)
	m.extraction.On("Extract", mock.Anything, mock.Anything, mock.MatchedBy(func(s *domain.ExtractionSchema) bool {
		return s.Name == "custom" && assert.ObjectsAreEqual([]string{"total"}, s.Properties)
	})).Return(json.RawMessage(`{}`), nil)

	fields := map[string]string{
		"schema":        `{"type":"object","properties":{"total":{"type":"number"}}}`,
		"document_type": "invoice",
	}
	c, w := newContext(multipartRequest(t, "/api/information-extract", "inv.pdf", pdfBytes, fields))
	h.InformationExtract(c)

	assert.Equal(t, http.StatusOK, w.Code)
	m.extraction.AssertExpectations(t)
}

func TestRelayHandler_InformationExtract_MissingSchema(t *testing.T) {
	h, m := newRelayHandler(50)

	c, w := newContext(multipartRequest(t, "/api/information-extract", "inv.pdf", pdfBytes, nil))
	h.InformationExtract(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No schema provided", decodeRelay(t, w).Error)
	m.extraction.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestRelayHandler_InformationExtract_InvalidSchema(t *testing.T) {
	h, m := newRelayHandler(50)

	fields := map[string]string{"schema": `["not","an","object"]`}
	c, w := newContext(multipartRequest(t, "/api/information-extract", "inv.pdf", pdfBytes, fields))
	h.InformationExtract(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid schema", decodeRelay(t, w).Error)
	m.extraction.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

// --- SolarChat ---

func chatRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/solar-chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRelayHandler_SolarChat_InvalidMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing", `{"reasoningEffort":"high"}`},
		{"not an array", `{"messages":"hello"}`},
		{"malformed json", `{"messages":[`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newRelayHandler(50)

			c, w := newContext(chatRequest(tc.body))
			h.SolarChat(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Invalid messages format", decodeRelay(t, w).Error)
			m.chat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
		})
	}
}

func TestRelayHandler_SolarChat_Complete(t *testing.T) {
	h, m := newRelayHandler(50)
	vendor := json.RawMessage(`{"choices":[{"message":{"role":"assistant","content":"Hi"}}]}`)

	m.chat.On("Complete", mock.Anything, mock.MatchedBy(func(in port.ChatInput) bool {
		return len(in.Messages) == 1 && in.Messages[0].Role == domain.RoleUser && in.ReasoningEffort == domain.ReasoningHigh
	})).Return(vendor, nil)

	c, w := newContext(chatRequest(`{"messages":[{"role":"user","content":"Hello"}],"reasoningEffort":"high"}`))
	h.SolarChat(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(vendor), w.Body.String())
	m.chat.AssertExpectations(t)
}

func TestRelayHandler_SolarChat_CompleteFailure(t *testing.T) {
	h, m := newRelayHandler(50)
	m.chat.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: refused"))

	c, w := newContext(chatRequest(`{"messages":[{"role":"user","content":"Hello"}]}`))
	h.SolarChat(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeRelay(t, w)
	assert.Equal(t, "Failed to chat with Solar LLM", body.Error)
	assert.Equal(t, "dial tcp: refused", body.Details)
}

func TestRelayHandler_SolarChat_Stream(t *testing.T) {
	h, m := newRelayHandler(50)

	chunks := make(chan port.StreamChunk, 3)
	chunks <- port.StreamChunk{Content: "Hel", Raw: json.RawMessage(`{"choices":[{"delta":{"content":"Hel"}}]}`)}
	chunks <- port.StreamChunk{Content: "lo"}
	close(chunks)

	m.chat.On("Stream", mock.Anything, mock.Anything).Return((<-chan port.StreamChunk)(chunks), nil)

	c, w := newContext(chatRequest(`{"messages":[{"role":"user","content":"Hello"}],"stream":true}`))
	h.SolarChat(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `data: {"choices":[{"delta":{"content":"Hel"}}]}`+"\n\n")
	assert.Contains(t, body, `data: {"choices":[{"delta":{"content":"lo"}}]}`+"\n\n")
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestRelayHandler_SolarChat_StreamError(t *testing.T) {
	h, m := newRelayHandler(50)

	chunks := make(chan port.StreamChunk, 2)
	chunks <- port.StreamChunk{Content: "partial"}
	chunks <- port.StreamChunk{Err: errors.New("stream reset")}
	close(chunks)

	m.chat.On("Stream", mock.Anything, mock.Anything).Return((<-chan port.StreamChunk)(chunks), nil)

	c, w := newContext(chatRequest(`{"messages":[{"role":"user","content":"Hello"}],"stream":true}`))
	h.SolarChat(c)

	body := w.Body.String()
	require.Contains(t, body, "event: error\n")
	assert.Contains(t, body, `"details":"stream reset"`)
	assert.NotContains(t, body, "[DONE]")
}
