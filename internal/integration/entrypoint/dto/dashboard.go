// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	"github.com/staymetrics/backend/internal/domain/entity"
	"github.com/staymetrics/backend/internal/domain/valueobject"
)

// RevenueSummaryResponse is the caller-facing revenue summary contract.
// The provenance field is required: consumers must be able to tell a live
// aggregate from a degraded one.
type RevenueSummaryResponse struct {
	PropertyID        string  `json:"property_id"`
	TotalRevenue      float64 `json:"total_revenue"`
	Currency          string  `json:"currency"`
	ReservationsCount int     `json:"reservations_count"`
	Provenance        string  `json:"provenance"`
}

// MonthlyRevenueResponse is the month-bucketed summary contract, including
// the resolved UTC bucket for auditability.
type MonthlyRevenueResponse struct {
	RevenueSummaryResponse
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	BucketStart string `json:"bucket_start"`
	BucketEnd   string `json:"bucket_end"`
}

// ToRevenueSummaryResponse converts a RevenueAggregate to the response DTO.
// This is the system's single decimal-to-float conversion point: the total
// is rounded half-up to 2 digits immediately before converting.
func ToRevenueSummaryResponse(agg *entity.RevenueAggregate) RevenueSummaryResponse {
	return RevenueSummaryResponse{
		PropertyID:        agg.PropertyID,
		TotalRevenue:      valueobject.APIAmount(agg.Total),
		Currency:          agg.Currency,
		ReservationsCount: agg.Count,
		Provenance:        string(agg.Provenance),
	}
}

// ToMonthlyRevenueResponse converts a monthly use case output to the response DTO.
func ToMonthlyRevenueResponse(output *revenue.GetMonthlyRevenueOutput) MonthlyRevenueResponse {
	return MonthlyRevenueResponse{
		RevenueSummaryResponse: ToRevenueSummaryResponse(output.Aggregate),
		Year:                   output.Year,
		Month:                  output.Month,
		BucketStart:            output.Bucket.Start.Format(time.RFC3339),
		BucketEnd:              output.Bucket.End.Format(time.RFC3339),
	}
}
