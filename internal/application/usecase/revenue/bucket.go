// Package revenue contains revenue aggregation use cases.
package revenue

import (
	"time"

	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/domain/entity"
)

// ResolveMonthBucket converts a (year, month) request into the half-open
// UTC interval covering that month in the property's local timezone.
//
// The boundaries are midnight-local on the 1st of the month and midnight-
// local on the 1st of the following month, both converted to UTC. Computing
// them in the property's zone rather than in UTC is load-bearing: around a
// month boundary, a late-evening local check-in in a negative-offset zone
// already sits in the next month when viewed in naive UTC.
func ResolveMonthBucket(year, month int, loc *time.Location) (entity.TimeBucket, error) {
	if month < 1 || month > 12 {
		return entity.TimeBucket{}, domainerror.NewRevenueError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	// time.Date normalizes month 13 into January of the following year.
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, loc)

	return entity.TimeBucket{
		Start: start.UTC(),
		End:   end.UTC(),
	}, nil
}
