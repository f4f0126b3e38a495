package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dashboardTTL = 10 * time.Minute

// Client caches computed dashboard payloads in Redis. A nil *Client is valid
// and disables caching, so callers never branch on configuration.
//
// Invalidation uses a per-interval version counter baked into the key instead
// of scanning for keys to delete: any write to an interval bumps the counter
// and all cached dashboards for it fall out of reach.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis, or returns (nil, nil) when url is empty.
func New(url string) (*Client, error) {
	if url == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Client{rdb: redis.NewClient(opt)}, nil
}

// FromRedis wraps an existing client (tests).
func FromRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Ping reports cache reachability for health checks.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) version(ctx context.Context, pi string) string {
	v, err := c.rdb.Get(ctx, "polypoint:dashver:"+pi).Result()
	if err != nil {
		return "0"
	}
	return v
}

func (c *Client) dashboardKey(ctx context.Context, pi, team, sprint string) string {
	return fmt.Sprintf("polypoint:dashboard:%s:%s:%s:%s", c.version(ctx, pi), pi, team, sprint)
}

// GetDashboard returns a cached dashboard payload, if any.
func (c *Client) GetDashboard(ctx context.Context, pi, team, sprint string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, c.dashboardKey(ctx, pi, team, sprint)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// SetDashboard stores a computed dashboard payload. Errors are swallowed;
// the cache is best-effort.
func (c *Client) SetDashboard(ctx context.Context, pi, team, sprint string, payload []byte) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, c.dashboardKey(ctx, pi, team, sprint), payload, dashboardTTL)
}

// InvalidateInterval drops every cached dashboard for a planning interval.
func (c *Client) InvalidateInterval(ctx context.Context, pi string) {
	if c == nil {
		return
	}
	c.rdb.Incr(ctx, "polypoint:dashver:"+pi)
}
