// Package revenue contains revenue aggregation use cases.
package revenue

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staymetrics/backend/internal/domain/entity"
)

// DefaultTenantID is the documented tenant fallback applied when a request
// carries no tenant context. It is an explicit default, not an error.
const DefaultTenantID = "default_tenant"

// RawAggregateRow is the store-boundary shape of an aggregation result.
// The total crosses the boundary as a decimal string; parsing it is the
// use case's responsibility so malformed values surface as typed errors.
type RawAggregateRow struct {
	PropertyID string
	TenantID   string
	Total      string
	Count      int
}

// RevenueRepository defines the query capability of the reservation store.
// Both operations scope by property AND tenant jointly; a property id alone
// is not globally unique across tenants.
type RevenueRepository interface {
	// AggregateAll sums all reservation amounts for the tenant-scoped
	// property with no time bound. A query that succeeds but matches no
	// rows returns a zero-valued row, never an error.
	AggregateAll(ctx context.Context, propertyID, tenantID string) (*RawAggregateRow, error)

	// AggregateRange restricts the aggregation to reservations whose
	// check-in instant falls within the half-open UTC bucket.
	AggregateRange(ctx context.Context, propertyID, tenantID string, bucket entity.TimeBucket) (*RawAggregateRow, error)
}

// PropertyRepository resolves property metadata (timezone, currency) by id
// within a tenant.
type PropertyRepository interface {
	GetByID(ctx context.Context, propertyID, tenantID string) (*entity.Property, error)
}

// AggregateCache memoizes revenue aggregates keyed by (property, tenant).
type AggregateCache interface {
	Get(ctx context.Context, propertyID, tenantID string) (*entity.RevenueAggregate, bool, error)
	Put(ctx context.Context, aggregate *entity.RevenueAggregate, ttl time.Duration) error
	Invalidate(ctx context.Context, propertyID, tenantID string) error
}

// ReferenceFigure is a static best-effort revenue figure for one property.
type ReferenceFigure struct {
	Total decimal.Decimal
	Count int
}

// ReferenceRevenueSource is an explicitly configured secondary source the
// fallback policy may consult while the store is down. Its figures are
// always served with fallback provenance.
type ReferenceRevenueSource interface {
	Lookup(propertyID, tenantID string) (*ReferenceFigure, bool)
}

// Currencies resolves the reporting currency for a tenant from
// configuration. The currency is carried explicitly on every aggregate so
// future multi-currency support does not change the contract.
type Currencies struct {
	Default   string
	PerTenant map[string]string
}

// For returns the configured currency for the given tenant.
func (c Currencies) For(tenantID string) string {
	if code, ok := c.PerTenant[tenantID]; ok {
		return code
	}
	return c.Default
}
