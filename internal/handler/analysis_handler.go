package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docpilot/internal/domain"
	"docpilot/internal/service"
)

// AnalysisHandler handles contract analysis endpoints.
type AnalysisHandler struct {
	intake   service.FileIntake
	analysis service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(intake service.FileIntake, analysis service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{intake: intake, analysis: analysis}
}

// Create handles POST /api/v1/contract-analyses
// @Summary Analyze a contract
// @Description Parses the document, asks the reasoning model for a structured analysis and returns the session snapshot. An unreadable answer completes with placeholder values and a warning.
// @Tags contract-analyses
// @Accept multipart/form-data
// @Produce json
// @Param document formData file true "Contract document"
// @Param session_id formData string false "Existing analysis session to reuse"
// @Success 201 {object} Response{data=domain.AnalysisSnapshot} "Analysis complete"
// @Failure 400 {object} ErrorResponseBody "Missing file or invalid session id"
// @Failure 409 {object} ErrorResponseBody "Session busy"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "No text found in document"
// @Failure 502 {object} ErrorResponseBody "Vendor request failed"
// @Router /v1/contract-analyses [post]
func (h *AnalysisHandler) Create(c *gin.Context) {
	file, err := readUpload(c, h.intake)
	if err != nil {
		HandleError(c, err)
		return
	}

	sessionID := uuid.Nil
	if raw := c.PostForm("session_id"); raw != "" {
		sessionID, err = uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
			return
		}
	}

	snap, err := h.analysis.Analyze(c.Request.Context(), sessionID, file)
	if err != nil {
		var failed *service.AnalysisFailedError
		if errors.As(err, &failed) {
			status, code, msg := MapDomainError(err)
			setRetryAfter(c, err)
			c.JSON(status, APIResponse{
				Success: false,
				Data:    gin.H{"session_id": failed.SessionID, "stage": domain.StageUpload},
				Error:   &APIError{Code: code, Message: msg, Details: failed.Err.Error()},
			})
			return
		}
		HandleError(c, err)
		return
	}
	RespondCreated(c, snap)
}

// Get handles GET /api/v1/contract-analyses/:id
// @Summary Get an analysis session
// @Tags contract-analyses
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=domain.AnalysisSnapshot}
// @Failure 400 {object} ErrorResponseBody "Invalid session ID"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Router /v1/contract-analyses/{id} [get]
func (h *AnalysisHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return
	}

	snap, err := h.analysis.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, snap)
}
