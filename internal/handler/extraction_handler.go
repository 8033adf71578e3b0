package handler

import (
	"github.com/gin-gonic/gin"

	"docpilot/internal/schema"
	"docpilot/internal/service"
)

// ExtractionHandler returns extraction results already decoded and projected
// onto the schema's declared fields.
type ExtractionHandler struct {
	intake     service.FileIntake
	extraction service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(intake service.FileIntake, extraction service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{intake: intake, extraction: extraction}
}

// ExtractionResult is the body of a successful v1 extraction.
type ExtractionResult struct {
	Schema string         `json:"schema" example:"invoice"`
	Fields map[string]any `json:"fields"`
}

// Create handles POST /api/v1/extractions
// @Summary Extract fields from a document
// @Tags extractions
// @Accept multipart/form-data
// @Produce json
// @Param document formData file true "Document"
// @Param schema formData string false "JSON Schema (object) as a string"
// @Param document_type formData string false "Built-in schema name"
// @Success 200 {object} Response{data=ExtractionResult}
// @Failure 400 {object} ErrorResponseBody "Missing file or schema, or invalid schema"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Vendor request failed"
// @Router /v1/extractions [post]
func (h *ExtractionHandler) Create(c *gin.Context) {
	file, err := readUpload(c, h.intake)
	if err != nil {
		HandleError(c, err)
		return
	}
	s, err := schema.Resolve(c.PostForm("schema"), c.PostForm("document_type"))
	if err != nil {
		HandleError(c, err)
		return
	}

	fields, err := h.extraction.ExtractFields(c.Request.Context(), file, s)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ExtractionResult{Schema: s.Name, Fields: fields})
}
