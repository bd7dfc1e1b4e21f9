// Package entity defines the core domain entities.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provenance tags how a revenue aggregate was produced.
type Provenance string

const (
	// ProvenanceLive marks an aggregate computed from the reservation store.
	ProvenanceLive Provenance = "live"
	// ProvenanceFallback marks an aggregate produced by the fallback policy
	// while the store was unreachable. Consumers must be able to tell the
	// two apart at every layer.
	ProvenanceFallback Provenance = "fallback"
)

// RevenueAggregate is the computed revenue summary for one property within
// one tenant. Total stays an exact decimal until the response boundary.
type RevenueAggregate struct {
	PropertyID string
	TenantID   string
	Total      decimal.Decimal
	Currency   string
	Count      int
	Provenance Provenance
	ComputedAt time.Time
}

// IsFallback reports whether the aggregate came from the fallback policy.
func (a *RevenueAggregate) IsFallback() bool {
	return a.Provenance == ProvenanceFallback
}

// TimeBucket is a half-open UTC interval [Start, End) used to classify
// reservations into a reporting period. Derived, never persisted.
type TimeBucket struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the instant t falls within the bucket.
func (b TimeBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}
