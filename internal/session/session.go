package session

import (
	"context"
	"fmt"
	"time"

	apperrors "go-gin-seat-reservation/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// 購票流程的明確 session context：流程開始時建立、結束時清除，
// 取代原本散落各處的隱式 key-value 暫存（最後建立的訂位 id 等）。

type FlowSession struct {
	ID string `json:"id"`
}

type Store interface {
	Begin(ctx context.Context) (*FlowSession, error)
	SetLastReservation(ctx context.Context, sessionID string, reservationID string) error
	LastReservation(ctx context.Context, sessionID string) (string, error)
	End(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (s *RedisStore) lastReservationKey(sessionID string) string {
	return fmt.Sprintf("session:%s:last_reservation", sessionID)
}

func (s *RedisStore) Begin(ctx context.Context) (*FlowSession, error) {
	id := uuid.New().String()
	if err := s.client.Set(ctx, s.sessionKey(id), "1", s.ttl).Err(); err != nil {
		return nil, err
	}
	return &FlowSession{ID: id}, nil
}

func (s *RedisStore) SetLastReservation(ctx context.Context, sessionID string, reservationID string) error {
	return s.client.Set(ctx, s.lastReservationKey(sessionID), reservationID, s.ttl).Err()
}

func (s *RedisStore) LastReservation(ctx context.Context, sessionID string) (string, error) {
	val, err := s.client.Get(ctx, s.lastReservationKey(sessionID)).Result()
	if err == redis.Nil {
		return "", apperrors.ErrReservationNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) End(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.sessionKey(sessionID), s.lastReservationKey(sessionID)).Err()
}
