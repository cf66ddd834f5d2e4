// Package cache keeps recent listing search results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"farmtech/internal/domain"
)

// TTL bounds how long a cached result page may be served.
const TTL = 60 * time.Second

const genKey = "farmtech:search:gen"

// SearchCache stores result pages keyed by the canonical criteria string.
// Get also reports the generation it looked in; a page computed after a miss
// must be Set under that generation so a concurrent Invalidate orphans it.
type SearchCache interface {
	Get(ctx context.Context, key string) (ls []domain.Listing, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, key string, ls []domain.Listing) error
	Invalidate(ctx context.Context) error
}

// Redis is a SearchCache backed by a redis client. Entries are namespaced by
// a generation counter; bumping it orphans old entries until their TTL ends.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis { return &Redis{rdb: rdb} }

// Dial connects to addr and checks the server is reachable.
func Dial(ctx context.Context, addr string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedis(rdb), nil
}

func (c *Redis) Close() error { return c.rdb.Close() }

func entryKey(gen int64, key string) string {
	return fmt.Sprintf("farmtech:search:%d:%s", gen, key)
}

func (c *Redis) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *Redis) Get(ctx context.Context, key string) ([]domain.Listing, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.rdb.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	var out []domain.Listing
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, gen, false, err
	}
	return out, gen, true, nil
}

func (c *Redis) Set(ctx context.Context, gen int64, key string, ls []domain.Listing) error {
	raw, err := json.Marshal(ls)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(gen, key), raw, TTL).Err()
}

func (c *Redis) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, genKey).Err()
}

// Nop never hits; used when no redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]domain.Listing, int64, bool, error) {
	return nil, 0, false, nil
}
func (Nop) Set(context.Context, int64, string, []domain.Listing) error { return nil }
func (Nop) Invalidate(context.Context) error                          { return nil }
