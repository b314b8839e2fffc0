package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servitec-peru/go-admin-backend/internal/verification/domain"
)

const (
	sessionKeyPrefix = "verify:session:" // verify:session:{session_id}
	sessionTTL       = 15 * time.Minute  // hard ceiling on any login attempt
)

// SessionRepository stores verification sessions in Redis.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Save writes the session, refreshing its TTL.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, r.sessionKey(session.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete removes the session. Deleting an absent session is a no-op.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
