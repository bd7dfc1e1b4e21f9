// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	"github.com/staymetrics/backend/internal/domain/entity"
)

// revenueRepository implements the revenue.RevenueRepository interface.
// The *gorm.DB handle is injected; each query runs under a bounded context
// so a hung store converts into a typed timeout instead of a stuck request.
type revenueRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewRevenueRepository creates a new revenue repository instance.
func NewRevenueRepository(db *gorm.DB, queryTimeout time.Duration) revenue.RevenueRepository {
	return &revenueRepository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// AggregateAll sums all non-cancelled reservations for the tenant-scoped
// property with no time bound.
func (r *revenueRepository) AggregateAll(
	ctx context.Context,
	propertyID, tenantID string,
) (*revenue.RawAggregateRow, error) {
	return r.aggregate(ctx, propertyID, tenantID, nil)
}

// AggregateRange restricts the aggregation to reservations whose check-in
// instant falls within the half-open UTC bucket.
func (r *revenueRepository) AggregateRange(
	ctx context.Context,
	propertyID, tenantID string,
	bucket entity.TimeBucket,
) (*revenue.RawAggregateRow, error) {
	return r.aggregate(ctx, propertyID, tenantID, &bucket)
}

func (r *revenueRepository) aggregate(
	ctx context.Context,
	propertyID, tenantID string,
	bucket *entity.TimeBucket,
) (*revenue.RawAggregateRow, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var row struct {
		PropertyID string `gorm:"column:property_id"`
		TenantID   string `gorm:"column:tenant_id"`
		Total      string `gorm:"column:total"`
		Count      int    `gorm:"column:reservation_count"`
	}

	// The total crosses the boundary as text so the exact decimal survives
	// the driver; it is parsed by the aggregation layer, never scanned into
	// a float. Scoping by property AND tenant is non-negotiable.
	query := `
		SELECT
			r.property_id,
			r.tenant_id,
			CAST(COALESCE(SUM(r.total_amount), 0) AS TEXT) AS total,
			COUNT(*) AS reservation_count
		FROM reservations r
		WHERE r.property_id = ?
			AND r.tenant_id = ?
			AND r.status <> 'cancelled'
	`
	args := []any{propertyID, tenantID}

	if bucket != nil {
		query += `
			AND r.check_in_date >= ?
			AND r.check_in_date < ?
		`
		args = append(args, bucket.Start, bucket.End)
	}

	query += `
		GROUP BY r.property_id, r.tenant_id
	`

	result := r.db.WithContext(ctx).Raw(query, args...).Scan(&row)
	if result.Error != nil {
		return nil, classifyStoreError(result.Error)
	}

	// No matching rows is a legitimate zero-revenue result, not a failure.
	if result.RowsAffected == 0 {
		return &revenue.RawAggregateRow{
			PropertyID: propertyID,
			TenantID:   tenantID,
			Total:      "0",
			Count:      0,
		}, nil
	}

	return &revenue.RawAggregateRow{
		PropertyID: row.PropertyID,
		TenantID:   row.TenantID,
		Total:      row.Total,
		Count:      row.Count,
	}, nil
}
