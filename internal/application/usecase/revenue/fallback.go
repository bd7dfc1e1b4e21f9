// Package revenue contains revenue aggregation use cases.
package revenue

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staymetrics/backend/internal/domain/entity"
)

// FallbackPolicy produces a degraded aggregate when the reservation store
// is unreachable or timing out. It is never applied to a legitimate
// zero-row result, and every activation emits a structured event so
// dashboards and audits can tell degraded zeros from real zeros.
type FallbackPolicy struct {
	reference ReferenceRevenueSource
}

// NewFallbackPolicy creates a fallback policy. The reference source is
// optional; without one the policy serves zero totals.
func NewFallbackPolicy(reference ReferenceRevenueSource) *FallbackPolicy {
	return &FallbackPolicy{
		reference: reference,
	}
}

// Apply builds a fallback aggregate for an all-time summary request,
// consulting the configured reference table when one exists.
func (p *FallbackPolicy) Apply(ctx context.Context, propertyID, tenantID, currency string, cause error) *entity.RevenueAggregate {
	total := decimal.Zero
	count := 0
	source := "zero"

	if p.reference != nil {
		if fig, ok := p.reference.Lookup(propertyID, tenantID); ok {
			total = fig.Total
			count = fig.Count
			source = "reference_table"
		}
	}

	slog.ErrorContext(ctx, "revenue store failure, serving fallback aggregate",
		"property_id", propertyID,
		"tenant_id", tenantID,
		"fallback_source", source,
		"cause", cause,
	)

	return &entity.RevenueAggregate{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Total:      total,
		Currency:   currency,
		Count:      count,
		Provenance: entity.ProvenanceFallback,
		ComputedAt: time.Now().UTC(),
	}
}

// ApplyMonthly builds a fallback aggregate for a monthly request. The
// reference table holds all-time figures only, so months always degrade
// to zero rather than misstating a period.
func (p *FallbackPolicy) ApplyMonthly(ctx context.Context, propertyID, tenantID, currency string, bucket entity.TimeBucket, cause error) *entity.RevenueAggregate {
	slog.ErrorContext(ctx, "revenue store failure, serving fallback monthly aggregate",
		"property_id", propertyID,
		"tenant_id", tenantID,
		"bucket_start", bucket.Start,
		"bucket_end", bucket.End,
		"cause", cause,
	)

	return &entity.RevenueAggregate{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Total:      decimal.Zero,
		Currency:   currency,
		Count:      0,
		Provenance: entity.ProvenanceFallback,
		ComputedAt: time.Now().UTC(),
	}
}
