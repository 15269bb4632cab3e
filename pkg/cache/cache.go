package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Directory listings churn with edits; banners and newsletter
// records change rarely.
const (
	TTLEvents      = 1 * time.Minute
	TTLRestaurants = 1 * time.Minute
	TTLDetail      = 5 * time.Minute
	TTLBanners     = 2 * time.Minute
	TTLNewsletter  = 30 * time.Second
	TTLDefault     = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixEvents      = "events:"
	PrefixRestaurants = "restaurants:"
	PrefixEvent       = "event:"
	PrefixRestaurant  = "restaurant:"
	PrefixBanners     = "banners:"
	PrefixNewsletter  = "newsletter:"
)

// Service is the Redis-backed cache used by read-heavy endpoints.
// All operations degrade to no-ops when Redis is unavailable.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetEventList(ctx context.Context, criteriaKey string) ([]byte, error)
	SetEventList(ctx context.Context, criteriaKey string, data interface{}) error
	InvalidateEventLists(ctx context.Context) error

	GetRestaurantList(ctx context.Context, criteriaKey string) ([]byte, error)
	SetRestaurantList(ctx context.Context, criteriaKey string, data interface{}) error
	InvalidateRestaurantLists(ctx context.Context) error

	GetActiveBanners(ctx context.Context) ([]byte, error)
	SetActiveBanners(ctx context.Context, data interface{}) error
	InvalidateBanners(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service backed by the given Redis client
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// ========================================
// Directory listings
// ========================================

func (c *redisCache) GetEventList(ctx context.Context, criteriaKey string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixEvents+criteriaKey).Bytes()
}

func (c *redisCache) SetEventList(ctx context.Context, criteriaKey string, data interface{}) error {
	return c.setJSON(ctx, PrefixEvents+criteriaKey, data, TTLEvents)
}

func (c *redisCache) InvalidateEventLists(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixEvents+"*")
}

func (c *redisCache) GetRestaurantList(ctx context.Context, criteriaKey string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixRestaurants+criteriaKey).Bytes()
}

func (c *redisCache) SetRestaurantList(ctx context.Context, criteriaKey string, data interface{}) error {
	return c.setJSON(ctx, PrefixRestaurants+criteriaKey, data, TTLRestaurants)
}

func (c *redisCache) InvalidateRestaurantLists(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixRestaurants+"*")
}

// ========================================
// Banners
// ========================================

func (c *redisCache) GetActiveBanners(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixBanners+"active").Bytes()
}

func (c *redisCache) SetActiveBanners(ctx context.Context, data interface{}) error {
	return c.setJSON(ctx, PrefixBanners+"active", data, TTLBanners)
}

func (c *redisCache) InvalidateBanners(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixBanners+"*")
}

// ========================================
// Internals
// ========================================

func (c *redisCache) setJSON(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, ttl).Err()
}

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
