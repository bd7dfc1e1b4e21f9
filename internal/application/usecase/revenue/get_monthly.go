// Package revenue contains revenue aggregation use cases.
package revenue

import (
	"context"
	"time"

	"github.com/staymetrics/backend/internal/domain/entity"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
)

// GetMonthlyRevenueInput represents the input for a monthly revenue summary.
type GetMonthlyRevenueInput struct {
	PropertyID string
	TenantID   string
	Year       int
	Month      int
}

// GetMonthlyRevenueOutput carries the aggregate together with the resolved
// reporting bucket.
type GetMonthlyRevenueOutput struct {
	Aggregate *entity.RevenueAggregate
	Bucket    entity.TimeBucket
	Year      int
	Month     int
}

// GetMonthlyRevenueUseCase handles the month-bucketed revenue variant. It
// resolves the property's IANA timezone, derives the UTC bucket from
// property-local month boundaries, and runs the range aggregation.
type GetMonthlyRevenueUseCase struct {
	revenueRepo  RevenueRepository
	propertyRepo PropertyRepository
	fallback     *FallbackPolicy
	currencies   Currencies
}

// NewGetMonthlyRevenueUseCase creates a new GetMonthlyRevenueUseCase instance.
func NewGetMonthlyRevenueUseCase(
	revenueRepo RevenueRepository,
	propertyRepo PropertyRepository,
	fallback *FallbackPolicy,
	currencies Currencies,
) *GetMonthlyRevenueUseCase {
	return &GetMonthlyRevenueUseCase{
		revenueRepo:  revenueRepo,
		propertyRepo: propertyRepo,
		fallback:     fallback,
		currencies:   currencies,
	}
}

// Execute returns the revenue aggregate for the property's given month.
func (uc *GetMonthlyRevenueUseCase) Execute(
	ctx context.Context,
	input GetMonthlyRevenueInput,
) (*GetMonthlyRevenueOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	tenantID := input.TenantID
	if tenantID == "" {
		tenantID = DefaultTenantID
	}

	prop, err := uc.propertyRepo.GetByID(ctx, input.PropertyID, tenantID)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(prop.Timezone)
	if err != nil {
		return nil, domainerror.NewRevenueError(
			domainerror.ErrCodeUnknownTimezone,
			"property timezone is not a valid IANA zone: "+prop.Timezone,
			domainerror.ErrUnknownTimezone,
		)
	}

	bucket, err := ResolveMonthBucket(input.Year, input.Month, loc)
	if err != nil {
		return nil, err
	}

	currency := prop.Currency
	if currency == "" {
		currency = uc.currencies.For(tenantID)
	}

	row, err := uc.revenueRepo.AggregateRange(ctx, input.PropertyID, tenantID, bucket)
	if err != nil {
		if domainerror.IsStoreFailure(err) {
			agg := uc.fallback.ApplyMonthly(ctx, input.PropertyID, tenantID, currency, bucket, err)
			return &GetMonthlyRevenueOutput{Aggregate: agg, Bucket: bucket, Year: input.Year, Month: input.Month}, nil
		}
		return nil, err
	}

	agg, err := buildLiveAggregate(input.PropertyID, tenantID, currency, row)
	if err != nil {
		return nil, err
	}

	return &GetMonthlyRevenueOutput{
		Aggregate: agg,
		Bucket:    bucket,
		Year:      input.Year,
		Month:     input.Month,
	}, nil
}

// validateInput validates the input parameters.
func (uc *GetMonthlyRevenueUseCase) validateInput(input GetMonthlyRevenueInput) error {
	if input.PropertyID == "" {
		return domainerror.NewRevenueError(
			domainerror.ErrCodeMissingPropertyID,
			"property_id is required",
			domainerror.ErrMissingPropertyID,
		)
	}

	if input.Month < 1 || input.Month > 12 {
		return domainerror.NewRevenueError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}

	if input.Year < 1 {
		return domainerror.NewRevenueError(
			domainerror.ErrCodeInvalidYear,
			"year must be a positive calendar year",
			nil,
		)
	}

	return nil
}
