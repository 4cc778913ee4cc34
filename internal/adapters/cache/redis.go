// Package cache implements the rate cache port on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	portsprov "github.com/petalhub/florist_backend/internal/core/ports/providers"
	"github.com/petalhub/florist_backend/internal/core/pricing"
)

// NewRedisClient creates a new Redis client and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// RedisRateCache caches resolved INR->currency rates in Redis.
type RedisRateCache struct {
	client *redis.Client
}

// NewRedisRateCache creates a RateCache backed by the given client.
func NewRedisRateCache(client *redis.Client) portsprov.RateCache {
	return &RedisRateCache{client: client}
}

func rateKey(currencyCode string) string {
	return fmt.Sprintf("rate:%s:%s", pricing.BaseCurrencyCode, currencyCode)
}

// GetRate returns the cached rate and whether it was present.
func (c *RedisRateCache) GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, rateKey(currencyCode)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to read rate from cache: %w", err)
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		// A corrupt entry is treated as a miss so resolution can repair it.
		return decimal.Zero, false, nil
	}
	return rate, true, nil
}

// SetRate stores a rate with a TTL.
func (c *RedisRateCache) SetRate(ctx context.Context, currencyCode string, rate decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, rateKey(currencyCode), rate.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to write rate to cache: %w", err)
	}
	return nil
}
