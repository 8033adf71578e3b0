package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docpilot/internal/export"
	"docpilot/pkg/logger"
)

const maxExportBody = 5 << 20

// ExportHandler converts structured results to spreadsheets.
type ExportHandler struct{}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// Create handles POST /api/v1/exports
// @Summary Export a result as CSV or XLSX
// @Description Flattens any JSON object into Field,Value rows with dotted paths
// @Tags exports
// @Accept json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default) or xlsx"
// @Param name query string false "Base file name"
// @Param request body object true "Extraction or analysis result"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Unsupported format or input is not a JSON object"
// @Router /v1/exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxExportBody))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, body); err != nil {
		HandleError(c, err)
		return
	}

	name := c.DefaultQuery("name", "result")
	filename := export.BuildFilename(name, format)
	logger.Info(c.Request.Context(), "export generated", "format", format, "bytes", buf.Len())

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
