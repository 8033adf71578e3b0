package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docpilot/internal/domain"
	"docpilot/internal/normalize"
	"docpilot/internal/port"
	"docpilot/pkg/logger"
)

// DocumentAnalystPrompt is the system instruction for document conversations.
const DocumentAnalystPrompt = "You are an expert document analyst. Provide helpful analysis and answer questions about documents."

// SendTurnInput is the DTO for one user turn in a conversation.
type SendTurnInput struct {
	ConversationID  uuid.UUID
	Text            string
	ReasoningEffort domain.ReasoningEffort
	ShowReasoning   bool
	// DocumentContext overrides the conversation's stored context when set.
	DocumentContext string
}

// ChatService relays reasoning chat and manages conversations.
type ChatService interface {
	Complete(ctx context.Context, input port.ChatInput) (json.RawMessage, error)
	Stream(ctx context.Context, input port.ChatInput) (<-chan port.StreamChunk, error)
	StartConversation(ctx context.Context, documentContext string) (*domain.Conversation, error)
	GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	SendTurn(ctx context.Context, input *SendTurnInput) (*domain.Conversation, error)
}

type chatService struct {
	encoder port.RequestEncoder
	gateway port.VendorGateway
	store   port.ConversationStore
}

// NewChatService creates a ChatService.
func NewChatService(encoder port.RequestEncoder, gateway port.VendorGateway, store port.ConversationStore) ChatService {
	return &chatService{encoder: encoder, gateway: gateway, store: store}
}

func (s *chatService) Complete(ctx context.Context, input port.ChatInput) (json.RawMessage, error) {
	input.Stream = false
	req, err := s.encoder.EncodeChat(input)
	if err != nil {
		return nil, err
	}
	return s.gateway.Call(ctx, req)
}

func (s *chatService) Stream(ctx context.Context, input port.ChatInput) (<-chan port.StreamChunk, error) {
	input.Stream = true
	req, err := s.encoder.EncodeChat(input)
	if err != nil {
		return nil, err
	}
	return s.gateway.Stream(ctx, req)
}

func (s *chatService) StartConversation(ctx context.Context, documentContext string) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:              uuid.New(),
		DocumentContext: documentContext,
		Turns:           []domain.ChatTurn{},
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}
	logger.Info(ctx, "conversation started", "conversation_id", conv.ID)
	return conv, nil
}

func (s *chatService) GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	return s.store.Get(ctx, id)
}

// SendTurn appends the user's turn, asks the model, and appends its answer.
// A failed vendor call becomes an error turn in the transcript and is not
// returned to the caller.
func (s *chatService) SendTurn(ctx context.Context, input *SendTurnInput) (*domain.Conversation, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	effort := input.ReasoningEffort
	if effort == "" {
		effort = domain.ReasoningMedium
	}
	if !domain.ValidReasoningEfforts[effort] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEffort, effort)
	}

	id := input.ConversationID
	if err := s.store.Acquire(ctx, id); err != nil {
		return nil, err
	}
	// Writes must land even if the caller goes away mid-turn.
	storeCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := s.store.Release(storeCtx, id); err != nil {
			logger.Warn(ctx, "releasing conversation guard", "conversation_id", id, "error", err)
		}
	}()

	// Read under the guard so sequence numbers and history are current.
	conv, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	userTurn := newTurn(len(conv.Turns)+1, domain.RoleUser, text)
	if err := s.store.Append(storeCtx, id, userTurn); err != nil {
		return nil, fmt.Errorf("appending user turn: %w", err)
	}
	history := append(conv.Turns, userTurn)

	documentContext := conv.DocumentContext
	if input.DocumentContext != "" {
		documentContext = input.DocumentContext
	}

	reply := s.answer(ctx, buildMessages(documentContext, history), effort, input.ShowReasoning)
	reply.Seq = userTurn.Seq + 1
	if err := s.store.Append(storeCtx, id, reply); err != nil {
		return nil, fmt.Errorf("appending assistant turn: %w", err)
	}

	return s.store.Get(storeCtx, id)
}

func (s *chatService) answer(ctx context.Context, messages []domain.ChatMessage, effort domain.ReasoningEffort, showReasoning bool) domain.ChatTurn {
	body, err := s.Complete(ctx, port.ChatInput{Messages: messages, ReasoningEffort: effort})
	if err != nil {
		return errorTurn(ctx, err)
	}
	content, reasoning, err := normalize.ChatContent(body)
	if err != nil {
		return errorTurn(ctx, err)
	}

	turn := newTurn(0, domain.RoleAssistant, content)
	if showReasoning {
		turn.Reasoning = reasoning
	}
	return turn
}

func errorTurn(ctx context.Context, err error) domain.ChatTurn {
	logger.Error(ctx, "chat turn failed", "error", err)
	turn := newTurn(0, domain.RoleAssistant, fmt.Sprintf("Sorry, I encountered an error: %s. Please try again.", err.Error()))
	turn.Error = true
	return turn
}

func newTurn(seq int, role domain.ChatRole, content string) domain.ChatTurn {
	return domain.ChatTurn{
		ID:        uuid.New(),
		Seq:       seq,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// buildMessages puts the system instruction first, then every prior turn in
// order. Error turns are display-only and never sent back to the model.
func buildMessages(documentContext string, turns []domain.ChatTurn) []domain.ChatMessage {
	system := DocumentAnalystPrompt
	if documentContext != "" {
		system += "\n\nDocument content:\n" + documentContext
	}

	messages := make([]domain.ChatMessage, 0, len(turns)+1)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: system})
	for _, t := range turns {
		if t.Error {
			continue
		}
		messages = append(messages, domain.ChatMessage{Role: t.Role, Content: t.Content})
	}
	return messages
}
