package upstage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"docpilot/internal/config"
	"docpilot/internal/domain"
	"docpilot/internal/port"
)

const (
	documentDigitizationPath = "/document-digitization"
	informationExtractPath   = "/information-extraction/chat/completions"
	chatCompletionsPath      = "/chat/completions"

	// DefaultSchemaName is the response_format schema name for caller-supplied schemas.
	DefaultSchemaName = "extraction_schema"
)

// Encoder turns files, schemas and messages into vendor requests.
// It never performs network I/O.
type Encoder struct {
	apiKey        string
	baseURL       string
	parseModel    string
	extractModel  string
	chatModel     string
	ocr           string
	coordinates   bool
	outputFormats string
	temperature   float64
	maxTokens     int
}

// NewEncoder creates an Encoder bound to the configured credential and models.
func NewEncoder(cfg *config.UpstageConfig) *Encoder {
	e := &Encoder{
		apiKey:        cfg.APIKey,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		parseModel:    cfg.ParseModel,
		extractModel:  cfg.ExtractModel,
		chatModel:     cfg.ChatModel,
		ocr:           cfg.OCR,
		coordinates:   cfg.Coordinates,
		outputFormats: cfg.OutputFormats,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
	}
	if e.baseURL == "" {
		e.baseURL = "https://api.upstage.ai/v1"
	}
	if e.parseModel == "" {
		e.parseModel = "document-parse"
	}
	if e.extractModel == "" {
		e.extractModel = "information-extract"
	}
	if e.chatModel == "" {
		e.chatModel = "solar-pro2-preview"
	}
	if e.maxTokens == 0 {
		e.maxTokens = 4000
	}
	return e
}

var _ port.RequestEncoder = (*Encoder)(nil)

// EncodeDocumentParse builds the multipart document-digitization request.
// The credential travels only in the Authorization header.
func (e *Encoder) EncodeDocumentParse(file *domain.UploadedFile) (*port.VendorRequest, error) {
	if file == nil || len(file.Content) == 0 {
		return nil, domain.ErrMissingFile
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename="%s"`, escapeQuotes(file.Name)))
	h.Set("Content-Type", file.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating document part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, fmt.Errorf("writing document part: %w", err)
	}

	fields := [][2]string{{"model", e.parseModel}}
	if e.ocr != "" {
		fields = append(fields, [2]string{"ocr", e.ocr})
	}
	if e.coordinates {
		fields = append(fields, [2]string{"coordinates", strconv.FormatBool(e.coordinates)})
	}
	if e.outputFormats != "" {
		fields = append(fields, [2]string{"output_formats", e.outputFormats})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("writing %s field: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	header := e.header(w.FormDataContentType())
	return &port.VendorRequest{
		Capability: domain.CapabilityDocumentParse,
		Method:     http.MethodPost,
		URL:        e.baseURL + documentDigitizationPath,
		Header:     header,
		Body:       buf.Bytes(),
	}, nil
}

type imageURLPart struct {
	Type     string          `json:"type"`
	ImageURL domain.ImageURL `json:"image_url"`
}

type extractMessage struct {
	Role    domain.ChatRole `json:"role"`
	Content []imageURLPart  `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
}

type responseFormat struct {
	Type       string           `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type extractBody struct {
	Model          string           `json:"model"`
	Messages       []extractMessage `json:"messages"`
	ResponseFormat responseFormat   `json:"response_format"`
}

// EncodeInformationExtract builds the schema-driven extraction request with the
// document embedded as a base64 data URI.
func (e *Encoder) EncodeInformationExtract(file *domain.UploadedFile, schema *domain.ExtractionSchema) (*port.VendorRequest, error) {
	if file == nil || len(file.Content) == 0 {
		return nil, domain.ErrMissingFile
	}
	if schema == nil || len(bytes.TrimSpace(schema.Raw)) == 0 {
		return nil, domain.ErrMissingSchema
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(schema.Raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
	}

	name := schema.ResponseName
	if name == "" {
		name = DefaultSchemaName
	}

	body := extractBody{
		Model: e.extractModel,
		Messages: []extractMessage{{
			Role: domain.RoleUser,
			Content: []imageURLPart{{
				Type:     "image_url",
				ImageURL: domain.ImageURL{URL: file.DataURI()},
			}},
		}},
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchemaFormat{Name: name, Schema: schema.Raw},
		},
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	return &port.VendorRequest{
		Capability: domain.CapabilityInformationExtract,
		Method:     http.MethodPost,
		URL:        e.baseURL + informationExtractPath,
		Header:     e.header("application/json"),
		Body:       bodyBytes,
	}, nil
}

type chatBody struct {
	Model           string               `json:"model"`
	Messages        []domain.ChatMessage `json:"messages"`
	ReasoningEffort string               `json:"reasoning_effort"`
	Stream          bool                 `json:"stream"`
	Temperature     float64              `json:"temperature"`
	MaxTokens       int                  `json:"max_tokens"`
}

// EncodeChat builds a reasoning-chat completion request. An empty effort
// defaults to medium.
func (e *Encoder) EncodeChat(input port.ChatInput) (*port.VendorRequest, error) {
	if len(input.Messages) == 0 {
		return nil, domain.ErrInvalidMessages
	}
	for i, msg := range input.Messages {
		if !domain.ValidChatRoles[msg.Role] {
			return nil, fmt.Errorf("%w: message %d has role %q", domain.ErrInvalidMessages, i, msg.Role)
		}
		if msg.Content == nil {
			return nil, fmt.Errorf("%w: message %d has no content", domain.ErrInvalidMessages, i)
		}
	}

	effort := input.ReasoningEffort
	if effort == "" {
		effort = domain.ReasoningMedium
	}
	if !domain.ValidReasoningEfforts[effort] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEffort, effort)
	}

	bodyBytes, err := json.Marshal(chatBody{
		Model:           e.chatModel,
		Messages:        input.Messages,
		ReasoningEffort: string(effort),
		Stream:          input.Stream,
		Temperature:     e.temperature,
		MaxTokens:       e.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	header := e.header("application/json")
	if input.Stream {
		header.Set("Accept", "text/event-stream")
	}
	return &port.VendorRequest{
		Capability: domain.CapabilityReasoningChat,
		Method:     http.MethodPost,
		URL:        e.baseURL + chatCompletionsPath,
		Header:     header,
		Body:       bodyBytes,
	}, nil
}

func (e *Encoder) header(contentType string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+e.apiKey)
	h.Set("Content-Type", contentType)
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
