package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docpilot/internal/domain"
	"docpilot/internal/service"
)

// ConversationHandler handles document conversation endpoints.
type ConversationHandler struct {
	chat service.ChatService
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(chat service.ChatService) *ConversationHandler {
	return &ConversationHandler{chat: chat}
}

// CreateConversationRequest is the body of POST /api/v1/conversations.
type CreateConversationRequest struct {
	DocumentContext string `json:"document_context" example:"RESIDENTIAL LEASE AGREEMENT ..."`
}

// SendTurnRequest is the body of POST /api/v1/conversations/:id/turns.
type SendTurnRequest struct {
	Text            string `json:"text" binding:"required" example:"Who is responsible for repairs?"`
	ReasoningEffort string `json:"reasoning_effort" example:"medium"`
	ShowReasoning   bool   `json:"show_reasoning" example:"false"`
	DocumentContext string `json:"document_context"`
}

// Create handles POST /api/v1/conversations
// @Summary Start a conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body CreateConversationRequest false "Optional document context"
// @Success 201 {object} Response{data=domain.Conversation}
// @Router /v1/conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	var req CreateConversationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	conv, err := h.chat.StartConversation(c.Request.Context(), req.DocumentContext)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, conv)
}

// Get handles GET /api/v1/conversations/:id
// @Summary Get a conversation transcript
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} Response{data=domain.Conversation}
// @Failure 404 {object} ErrorResponseBody "Conversation not found"
// @Router /v1/conversations/{id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid conversation ID")
		return
	}

	conv, err := h.chat.GetConversation(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, conv)
}

// SendTurn handles POST /api/v1/conversations/:id/turns
// @Summary Send a message
// @Description Appends the user turn and the model's answer. A failed vendor call is recorded as an error turn, not returned as an error.
// @Tags conversations
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body SendTurnRequest true "Message"
// @Success 200 {object} Response{data=domain.Conversation}
// @Failure 400 {object} ErrorResponseBody "Empty message or invalid reasoning effort"
// @Failure 404 {object} ErrorResponseBody "Conversation not found"
// @Failure 409 {object} ErrorResponseBody "A message is already in flight"
// @Router /v1/conversations/{id}/turns [post]
func (h *ConversationHandler) SendTurn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid conversation ID")
		return
	}

	var req SendTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrEmptyMessage)
		return
	}

	conv, err := h.chat.SendTurn(c.Request.Context(), &service.SendTurnInput{
		ConversationID:  id,
		Text:            req.Text,
		ReasoningEffort: domain.ReasoningEffort(req.ReasoningEffort),
		ShowReasoning:   req.ShowReasoning,
		DocumentContext: req.DocumentContext,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, conv)
}
