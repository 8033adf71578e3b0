package port

import (
	"context"

	"github.com/google/uuid"

	"docpilot/internal/domain"
)

// ConversationStore persists chat transcripts for the lifetime of a session.
type ConversationStore interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	// Append adds a turn to the end of the transcript. Turns are never edited or removed.
	Append(ctx context.Context, id uuid.UUID, turn domain.ChatTurn) error
	// Acquire takes the in-flight guard for a conversation; domain.ErrBusy if already held.
	Acquire(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
}
