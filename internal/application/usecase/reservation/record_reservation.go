// Package reservation contains reservation-related use cases.
package reservation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	"github.com/staymetrics/backend/internal/domain/entity"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/domain/valueobject"
)

// ReservationRepository defines the write capability for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
}

// CacheInvalidator drops the memoized aggregate for a (property, tenant)
// key after its underlying facts change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, propertyID, tenantID string) error
}

// RecordReservationInput represents the input for recording a reservation.
// The amount arrives as a decimal string and is validated exactly.
type RecordReservationInput struct {
	PropertyID string
	TenantID   string
	GuestName  string
	Amount     string
	CheckIn    time.Time
	CheckOut   *time.Time
}

// RecordReservationUseCase records a reservation and invalidates the
// cached revenue aggregate for its property.
type RecordReservationUseCase struct {
	reservationRepo ReservationRepository
	cache           CacheInvalidator
}

// NewRecordReservationUseCase creates a new RecordReservationUseCase instance.
func NewRecordReservationUseCase(
	reservationRepo ReservationRepository,
	cache CacheInvalidator,
) *RecordReservationUseCase {
	return &RecordReservationUseCase{
		reservationRepo: reservationRepo,
		cache:           cache,
	}
}

// Execute validates and persists the reservation, then invalidates the
// revenue cache entry for its (property, tenant) key.
func (uc *RecordReservationUseCase) Execute(
	ctx context.Context,
	input RecordReservationInput,
) (*entity.Reservation, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	tenantID := input.TenantID
	if tenantID == "" {
		tenantID = revenue.DefaultTenantID
	}

	amount, err := valueobject.ParseAmount(input.Amount)
	if err != nil {
		return nil, domainerror.NewReservationError(
			domainerror.ErrCodeBadAmount,
			"total_amount is not a valid decimal",
			err,
		)
	}
	if amount.IsNegative() {
		return nil, domainerror.NewReservationError(
			domainerror.ErrCodeNegativeAmount,
			"total_amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}

	now := time.Now().UTC()
	res := &entity.Reservation{
		ID:          uuid.New(),
		PropertyID:  input.PropertyID,
		TenantID:    tenantID,
		GuestName:   input.GuestName,
		TotalAmount: amount,
		CheckIn:     input.CheckIn.UTC(),
		CheckOut:    input.CheckOut,
		Status:      entity.ReservationStatusConfirmed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.reservationRepo.Create(ctx, res); err != nil {
		return nil, err
	}

	// The cached aggregate is stale now. A failed invalidation only delays
	// freshness until TTL expiry, so it is logged rather than surfaced.
	if err := uc.cache.Invalidate(ctx, res.PropertyID, res.TenantID); err != nil {
		slog.WarnContext(ctx, "revenue cache invalidation failed",
			"property_id", res.PropertyID,
			"tenant_id", res.TenantID,
			"error", err,
		)
	}

	return res, nil
}

// validateInput validates the input parameters.
func (uc *RecordReservationUseCase) validateInput(input RecordReservationInput) error {
	if input.PropertyID == "" {
		return domainerror.NewRevenueError(
			domainerror.ErrCodeMissingPropertyID,
			"property_id is required",
			domainerror.ErrMissingPropertyID,
		)
	}

	if input.GuestName == "" {
		return domainerror.NewReservationError(
			domainerror.ErrCodeMissingGuestName,
			"guest_name is required",
			domainerror.ErrMissingGuestName,
		)
	}

	if input.CheckIn.IsZero() {
		return domainerror.NewReservationError(
			domainerror.ErrCodeMissingCheckIn,
			"check_in is required",
			domainerror.ErrMissingCheckIn,
		)
	}

	return nil
}
