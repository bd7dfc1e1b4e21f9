// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/staymetrics/backend/internal/application/usecase/reservation"
	"github.com/staymetrics/backend/internal/domain/entity"
	"github.com/staymetrics/backend/internal/integration/persistence/model"
)

// reservationRepository implements the reservation.ReservationRepository interface.
type reservationRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewReservationRepository creates a new reservation repository instance.
func NewReservationRepository(db *gorm.DB, queryTimeout time.Duration) reservation.ReservationRepository {
	return &reservationRepository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// Create persists a new reservation fact.
func (r *reservationRepository) Create(ctx context.Context, res *entity.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	m := model.ReservationFromEntity(res)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return classifyStoreError(err)
	}

	return nil
}
