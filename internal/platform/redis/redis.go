// Package redis opens the connection that backs dialog sessions.
package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
)

// Client is the session connection. Failures carry the SESSION_ERROR code.
type Client struct {
	*redis.Client
}

// Open connects and pings once, so a wrong address fails at startup rather
// than on the first dialog step.
func Open(ctx context.Context, addr, password string, db int) (*Client, error) {
	if addr == "" {
		return nil, apperrors.NewSessionError("connect", errors.New("empty redis address")).
			WithDetail("db", db)
	}
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, apperrors.NewSessionError("connect", err).
			WithDetail("addr", addr).
			WithDetail("db", db)
	}
	return &Client{Client: c}, nil
}

// Check backs the readiness endpoint.
func (c *Client) Check(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return apperrors.NewSessionError("ping", err)
	}
	return nil
}
