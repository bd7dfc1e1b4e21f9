// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	"github.com/staymetrics/backend/internal/domain/entity"
)

const revenueCacheKeyPrefix = "revenue:summary:"

// cachedAggregate is the Redis-side JSON shape of a revenue aggregate.
// The total serializes as a quoted decimal string, so the exact value
// survives the round trip.
type cachedAggregate struct {
	PropertyID string          `json:"property_id"`
	TenantID   string          `json:"tenant_id"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	Count      int             `json:"count"`
	Provenance string          `json:"provenance"`
	ComputedAt time.Time       `json:"computed_at"`
}

// revenueCache implements revenue.AggregateCache on Redis. Entries are
// replaced wholesale; per-entry TTLs let fallback results expire much
// sooner than live ones.
type revenueCache struct {
	client *redis.Client
}

// NewRevenueCache creates a Redis-backed revenue aggregate cache.
func NewRevenueCache(client *redis.Client) revenue.AggregateCache {
	return &revenueCache{
		client: client,
	}
}

func cacheKey(propertyID, tenantID string) string {
	return revenueCacheKeyPrefix + tenantID + ":" + propertyID
}

// Get returns the cached aggregate for the key, reporting a miss for
// absent or expired entries.
func (c *revenueCache) Get(ctx context.Context, propertyID, tenantID string) (*entity.RevenueAggregate, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(propertyID, tenantID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("revenue cache get: %w", err)
	}

	var cached cachedAggregate
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		// A corrupt entry is dropped and treated as a miss.
		c.client.Del(ctx, cacheKey(propertyID, tenantID))
		return nil, false, fmt.Errorf("revenue cache entry corrupt: %w", err)
	}

	return &entity.RevenueAggregate{
		PropertyID: cached.PropertyID,
		TenantID:   cached.TenantID,
		Total:      cached.Total,
		Currency:   cached.Currency,
		Count:      cached.Count,
		Provenance: entity.Provenance(cached.Provenance),
		ComputedAt: cached.ComputedAt,
	}, true, nil
}

// Put stores the aggregate under its (property, tenant) key with the
// given lifetime.
func (c *revenueCache) Put(ctx context.Context, aggregate *entity.RevenueAggregate, ttl time.Duration) error {
	payload, err := json.Marshal(cachedAggregate{
		PropertyID: aggregate.PropertyID,
		TenantID:   aggregate.TenantID,
		Total:      aggregate.Total,
		Currency:   aggregate.Currency,
		Count:      aggregate.Count,
		Provenance: string(aggregate.Provenance),
		ComputedAt: aggregate.ComputedAt,
	})
	if err != nil {
		return fmt.Errorf("revenue cache marshal: %w", err)
	}

	key := cacheKey(aggregate.PropertyID, aggregate.TenantID)
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("revenue cache set: %w", err)
	}

	return nil
}

// Invalidate drops the cached aggregate for the key.
func (c *revenueCache) Invalidate(ctx context.Context, propertyID, tenantID string) error {
	if err := c.client.Del(ctx, cacheKey(propertyID, tenantID)).Err(); err != nil {
		return fmt.Errorf("revenue cache del: %w", err)
	}
	return nil
}

// noopCache stands in when Redis is unavailable at startup. Every read
// is a miss, so summaries are recomputed from the store each time.
type noopCache struct{}

// NewNoopCache creates a cache that stores nothing.
func NewNoopCache() revenue.AggregateCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, string) (*entity.RevenueAggregate, bool, error) {
	return nil, false, nil
}

func (noopCache) Put(context.Context, *entity.RevenueAggregate, time.Duration) error {
	return nil
}

func (noopCache) Invalidate(context.Context, string, string) error {
	return nil
}
