package user

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache: miss")

// Cache is the key-value contract CachedLookup needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Lookup resolves a user id, returning (nil, nil) when the user does not exist.
type Lookup interface {
	GetUserByID(ctx context.Context, id int) (*User, error)
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

var _ Cache = (*RedisCache)(nil)

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	res, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return res, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// CachedLookup puts a shared read-through cache in front of the user table.
// Only existing users are cached; cache failures fall back to the database.
type CachedLookup struct {
	next  Lookup
	cache Cache
	ttl   time.Duration
}

func NewCachedLookup(next Lookup, cache Cache, ttl time.Duration) *CachedLookup {
	return &CachedLookup{next: next, cache: cache, ttl: ttl}
}

func cacheKey(id int) string {
	return "report:user:" + strconv.Itoa(id)
}

func (c *CachedLookup) GetUserByID(ctx context.Context, id int) (*User, error) {
	key := cacheKey(id)

	if raw, err := c.cache.Get(ctx, key); err == nil {
		u := &User{}
		if err := json.Unmarshal([]byte(raw), u); err == nil {
			return u, nil
		}
	}

	u, err := c.next.GetUserByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}

	if payload, err := json.Marshal(u); err == nil {
		_ = c.cache.Set(ctx, key, string(payload), c.ttl)
	}
	return u, nil
}
