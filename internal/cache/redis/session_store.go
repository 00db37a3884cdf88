package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	rplatform "github.com/open-builders/school-bot/internal/platform/redis"
	"github.com/open-builders/school-bot/internal/scene"
)

var _ scene.Store = (*SessionStore)(nil)

// SessionStore keeps dialog sessions in Redis as JSON with a sliding TTL.
type SessionStore struct {
	client *rplatform.Client
	ttl    time.Duration
}

func NewSessionStore(client *rplatform.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(userID int64) string { return fmt.Sprintf("session:%d", userID) }

// Load returns an empty session when none is stored.
func (s *SessionStore) Load(ctx context.Context, userID int64) (*scene.Session, error) {
	v, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &scene.Session{}, nil
	}
	if err != nil {
		return nil, apperrors.NewSessionError("load session", err).WithUserID(userID)
	}

	var sess scene.Session
	if err := json.Unmarshal(v, &sess); err != nil {
		return nil, apperrors.NewSessionError("decode session", err).WithUserID(userID)
	}
	return &sess, nil
}

// Save deletes the key once nothing is left worth keeping.
func (s *SessionStore) Save(ctx context.Context, userID int64, sess *scene.Session) error {
	if !sess.Active() && !sess.JustRegistered {
		if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
			return apperrors.NewSessionError("delete session", err).WithUserID(userID)
		}
		return nil
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return apperrors.NewSessionError("encode session", err).WithUserID(userID)
	}
	if err := s.client.Set(ctx, s.key(userID), b, s.ttl).Err(); err != nil {
		return apperrors.NewSessionError("save session", err).WithUserID(userID)
	}
	return nil
}
