package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{client}, nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}

// OAuthStateKey holds a pending login's state parameter until the
// provider callback consumes it.
func OAuthStateKey(state string) string {
	return fmt.Sprintf("oauth:state:%s", state)
}

// SaveOAuthState records a pending login state for ttl.
func (c *Client) SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error {
	return c.Set(ctx, OAuthStateKey(state), "1", ttl).Err()
}

// ConsumeOAuthState deletes and reports a pending login state. Each state
// is single use: a second consume returns false.
func (c *Client) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	_, err := c.GetDel(ctx, OAuthStateKey(state)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RateLimitKey buckets requests per caller identity (or IP for anonymous).
func RateLimitKey(caller string) string {
	return fmt.Sprintf("ratelimit:%s", caller)
}
