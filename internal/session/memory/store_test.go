package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docpilot/internal/domain"
)

func newConversation() *domain.Conversation {
	return &domain.Conversation{ID: uuid.New(), Turns: []domain.ChatTurn{}, CreatedAt: time.Now()}
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)
	conv := newConversation()
	require.NoError(t, s.Create(ctx, conv))

	require.NoError(t, s.Append(ctx, conv.ID, domain.ChatTurn{Seq: 1, Role: domain.RoleUser, Content: "hi"}))
	require.NoError(t, s.Append(ctx, conv.ID, domain.ChatTurn{Seq: 2, Role: domain.RoleAssistant, Content: "hello"}))

	got, err := s.Get(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Turns, 2)
	assert.Equal(t, 1, got.Turns[0].Seq)
	assert.Equal(t, 2, got.Turns[1].Seq)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)
	conv := newConversation()
	require.NoError(t, s.Create(ctx, conv))
	require.NoError(t, s.Append(ctx, conv.ID, domain.ChatTurn{Seq: 1, Content: "a"}))

	got, _ := s.Get(ctx, conv.ID)
	got.Turns[0].Content = "changed"

	again, _ := s.Get(ctx, conv.ID)
	assert.Equal(t, "a", again.Turns[0].Content)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)

	_, err := s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, s.Append(ctx, uuid.New(), domain.ChatTurn{}), domain.ErrSessionNotFound)
	assert.ErrorIs(t, s.Acquire(ctx, uuid.New()), domain.ErrSessionNotFound)
}

func TestStore_AcquireIsExclusive(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)
	conv := newConversation()
	require.NoError(t, s.Create(ctx, conv))

	require.NoError(t, s.Acquire(ctx, conv.ID))
	assert.ErrorIs(t, s.Acquire(ctx, conv.ID), domain.ErrBusy)

	require.NoError(t, s.Release(ctx, conv.ID))
	assert.NoError(t, s.Acquire(ctx, conv.ID))
}

func TestStore_ExpiresIdleConversations(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Hour)
	now := time.Now()
	s.now = func() time.Time { return now }

	conv := newConversation()
	require.NoError(t, s.Create(ctx, conv))

	now = now.Add(2 * time.Hour)
	_, err := s.Get(ctx, conv.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
