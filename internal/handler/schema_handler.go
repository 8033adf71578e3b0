package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docpilot/internal/domain"
	"docpilot/internal/schema"
)

// SchemaHandler serves the built-in extraction schemas.
type SchemaHandler struct{}

// NewSchemaHandler creates a new SchemaHandler.
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

// SchemaSummary describes one built-in schema.
type SchemaSummary struct {
	Name       string   `json:"name" example:"invoice"`
	Properties []string `json:"properties"`
}

// SchemaDetail is a built-in schema with its JSON Schema document.
type SchemaDetail struct {
	Name       string          `json:"name" example:"invoice"`
	Properties []string        `json:"properties"`
	Schema     json.RawMessage `json:"schema" swaggertype:"object"`
}

// List handles GET /api/v1/schemas
// @Summary List built-in extraction schemas
// @Tags schemas
// @Produce json
// @Success 200 {object} Response{data=[]SchemaSummary}
// @Router /v1/schemas [get]
func (h *SchemaHandler) List(c *gin.Context) {
	names := schema.BuiltinNames()
	out := make([]SchemaSummary, 0, len(names))
	for _, name := range names {
		s, err := schema.Builtin(name)
		if err != nil {
			HandleError(c, err)
			return
		}
		out = append(out, SchemaSummary{Name: s.Name, Properties: s.Properties})
	}
	RespondOK(c, out)
}

// Get handles GET /api/v1/schemas/:type
// @Summary Get a built-in extraction schema
// @Tags schemas
// @Produce json
// @Param type path string true "Schema name"
// @Success 200 {object} Response{data=SchemaDetail}
// @Failure 404 {object} ErrorResponseBody "Unknown schema"
// @Router /v1/schemas/{type} [get]
func (h *SchemaHandler) Get(c *gin.Context) {
	s, err := schema.Builtin(c.Param("type"))
	if errors.Is(err, domain.ErrUnknownSchema) {
		RespondError(c, http.StatusNotFound, "UNKNOWN_SCHEMA", "unknown built-in schema")
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, SchemaDetail{Name: s.Name, Properties: s.Properties, Schema: s.Raw})
}
