package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe: an unreachable or missing redis
// behaves like an empty cache. A nil *Client is valid and caches nothing.
type Client struct {
	client *redis.Client
}

// New creates a new Redis-backed client. An empty addr disables caching and
// returns nil.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// GetJSON decodes the cached value at key into dst and reports whether a
// usable value was found.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors are both misses
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON stores value encoded as JSON with TTL, ignoring redis errors.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, ttl).Err()
}

// Counter returns the integer stored at key, 0 when the key is unset. ok is
// false when no value could be read, in which case callers must not cache.
func (c *Client) Counter(ctx context.Context, key string) (n int64, ok bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// Incr increments the counter at key, ignoring redis errors.
func (c *Client) Incr(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Incr(ctx, key).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
