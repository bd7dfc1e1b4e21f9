// Package revenue contains revenue aggregation use cases.
package revenue

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/staymetrics/backend/internal/domain/entity"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/domain/valueobject"
)

// GetRevenueSummaryInput represents the input for an all-time revenue summary.
type GetRevenueSummaryInput struct {
	PropertyID string
	TenantID   string
}

// GetRevenueSummaryUseCase handles the all-time revenue summary path:
// cache check, single-flight recomputation on miss, fallback dispatch on
// transient store failure.
type GetRevenueSummaryUseCase struct {
	revenueRepo RevenueRepository
	cache       AggregateCache
	fallback    *FallbackPolicy
	currencies  Currencies
	liveTTL     time.Duration
	fallbackTTL time.Duration
	group       singleflight.Group
}

// NewGetRevenueSummaryUseCase creates a new GetRevenueSummaryUseCase instance.
// Fallback aggregates are cached with the shorter fallbackTTL so the live
// path is retried soon after an outage.
func NewGetRevenueSummaryUseCase(
	revenueRepo RevenueRepository,
	cache AggregateCache,
	fallback *FallbackPolicy,
	currencies Currencies,
	liveTTL time.Duration,
	fallbackTTL time.Duration,
) *GetRevenueSummaryUseCase {
	return &GetRevenueSummaryUseCase{
		revenueRepo: revenueRepo,
		cache:       cache,
		fallback:    fallback,
		currencies:  currencies,
		liveTTL:     liveTTL,
		fallbackTTL: fallbackTTL,
	}
}

// Execute returns the revenue aggregate for the tenant-scoped property.
func (uc *GetRevenueSummaryUseCase) Execute(
	ctx context.Context,
	input GetRevenueSummaryInput,
) (*entity.RevenueAggregate, error) {
	if input.PropertyID == "" {
		return nil, domainerror.NewRevenueError(
			domainerror.ErrCodeMissingPropertyID,
			"property_id is required",
			domainerror.ErrMissingPropertyID,
		)
	}

	tenantID := input.TenantID
	if tenantID == "" {
		tenantID = DefaultTenantID
	}

	if agg, ok, err := uc.cache.Get(ctx, input.PropertyID, tenantID); err != nil {
		// Cache loss degrades to a direct store query, never to a failed
		// request.
		slog.WarnContext(ctx, "revenue cache read failed, querying store directly",
			"property_id", input.PropertyID,
			"tenant_id", tenantID,
			"error", err,
		)
	} else if ok {
		return agg, nil
	}

	// Concurrent cold-cache requests for the same key join one in-flight
	// recomputation; the store sees a single query.
	key := tenantID + "|" + input.PropertyID
	v, err, _ := uc.group.Do(key, func() (any, error) {
		// Shared work outlives the originating request: a caller's
		// cancellation must not starve the other waiters or leave the
		// cache cold.
		return uc.recompute(context.WithoutCancel(ctx), input.PropertyID, tenantID)
	})
	if err != nil {
		return nil, err
	}

	return v.(*entity.RevenueAggregate), nil
}

// recompute runs the live aggregation query and routes transient store
// failures through the fallback policy. All other failures propagate.
func (uc *GetRevenueSummaryUseCase) recompute(ctx context.Context, propertyID, tenantID string) (*entity.RevenueAggregate, error) {
	currency := uc.currencies.For(tenantID)

	row, err := uc.revenueRepo.AggregateAll(ctx, propertyID, tenantID)
	if err != nil {
		if domainerror.IsStoreFailure(err) {
			agg := uc.fallback.Apply(ctx, propertyID, tenantID, currency, err)
			uc.store(ctx, agg, uc.fallbackTTL)
			return agg, nil
		}
		return nil, err
	}

	agg, err := buildLiveAggregate(propertyID, tenantID, currency, row)
	if err != nil {
		return nil, err
	}

	uc.store(ctx, agg, uc.liveTTL)
	return agg, nil
}

func (uc *GetRevenueSummaryUseCase) store(ctx context.Context, agg *entity.RevenueAggregate, ttl time.Duration) {
	if err := uc.cache.Put(ctx, agg, ttl); err != nil {
		slog.WarnContext(ctx, "revenue cache write failed",
			"property_id", agg.PropertyID,
			"tenant_id", agg.TenantID,
			"error", err,
		)
	}
}

// buildLiveAggregate converts a store-boundary row into a live aggregate,
// enforcing tenant scoping and exact decimal parsing.
func buildLiveAggregate(propertyID, tenantID, currency string, row *RawAggregateRow) (*entity.RevenueAggregate, error) {
	if row.TenantID != "" && row.TenantID != tenantID {
		return nil, domainerror.NewRevenueError(
			domainerror.ErrCodeCrossTenantScope,
			"aggregate row tenant does not match requested tenant",
			domainerror.ErrCrossTenantScope,
		)
	}

	total, err := valueobject.ParseAmount(row.Total)
	if err != nil {
		return nil, err
	}

	return &entity.RevenueAggregate{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Total:      total,
		Currency:   currency,
		Count:      row.Count,
		Provenance: entity.ProvenanceLive,
		ComputedAt: time.Now().UTC(),
	}, nil
}
