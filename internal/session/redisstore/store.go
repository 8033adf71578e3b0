// Package redisstore keeps conversations in Redis so they survive restarts
// and can be shared between relay instances.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"docpilot/internal/config"
	"docpilot/internal/domain"
)

// lockTTL bounds how long a crashed holder can keep a conversation busy.
const lockTTL = 5 * time.Minute

// Store is a Redis-backed port.ConversationStore.
//
// Keys, all sharing the conversation TTL:
//
//	docpilot:conv:<id>:meta   conversation JSON without turns
//	docpilot:conv:<id>:turns  list of turn JSON, oldest first
//	docpilot:conv:<id>:lock   in-flight guard (SETNX)
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Store on an existing client.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// NewFromConfig connects to the configured Redis and verifies it responds.
func NewFromConfig(ctx context.Context, cfg *config.SessionConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	return New(client, cfg.TTL), nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func metaKey(id uuid.UUID) string  { return fmt.Sprintf("docpilot:conv:%s:meta", id) }
func turnsKey(id uuid.UUID) string { return fmt.Sprintf("docpilot:conv:%s:turns", id) }
func lockKey(id uuid.UUID) string  { return fmt.Sprintf("docpilot:conv:%s:lock", id) }

func (s *Store) Create(ctx context.Context, conv *domain.Conversation) error {
	meta := *conv
	meta.Turns = nil
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling conversation: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, metaKey(conv.ID), data, s.ttl)
		pipe.Del(ctx, turnsKey(conv.ID))
		for _, turn := range conv.Turns {
			b, err := json.Marshal(turn)
			if err != nil {
				return fmt.Errorf("marshaling turn: %w", err)
			}
			pipe.RPush(ctx, turnsKey(conv.ID), b)
		}
		if len(conv.Turns) > 0 && s.ttl > 0 {
			pipe.Expire(ctx, turnsKey(conv.ID), s.ttl)
		}
		return nil
	})
	return err
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	data, err := s.client.Get(ctx, metaKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading conversation: %w", err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("decoding conversation: %w", err)
	}

	raw, err := s.client.LRange(ctx, turnsKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("loading turns: %w", err)
	}
	conv.Turns = make([]domain.ChatTurn, 0, len(raw))
	for _, r := range raw {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(r), &turn); err != nil {
			return nil, fmt.Errorf("decoding turn: %w", err)
		}
		conv.Turns = append(conv.Turns, turn)
	}
	return &conv, nil
}

func (s *Store) Append(ctx context.Context, id uuid.UUID, turn domain.ChatTurn) error {
	exists, err := s.client.Exists(ctx, metaKey(id)).Result()
	if err != nil {
		return fmt.Errorf("checking conversation: %w", err)
	}
	if exists == 0 {
		return domain.ErrSessionNotFound
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshaling turn: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, turnsKey(id), data)
		if s.ttl > 0 {
			pipe.Expire(ctx, turnsKey(id), s.ttl)
			pipe.Expire(ctx, metaKey(id), s.ttl)
		}
		return nil
	})
	return err
}

func (s *Store) Acquire(ctx context.Context, id uuid.UUID) error {
	exists, err := s.client.Exists(ctx, metaKey(id)).Result()
	if err != nil {
		return fmt.Errorf("checking conversation: %w", err)
	}
	if exists == 0 {
		return domain.ErrSessionNotFound
	}

	ok, err := s.client.SetNX(ctx, lockKey(id), "1", lockTTL).Result()
	if err != nil {
		return fmt.Errorf("acquiring conversation guard: %w", err)
	}
	if !ok {
		return domain.ErrBusy
	}
	return nil
}

func (s *Store) Release(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, lockKey(id)).Err()
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
