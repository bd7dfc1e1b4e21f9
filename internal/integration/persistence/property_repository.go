// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	"github.com/staymetrics/backend/internal/domain/entity"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/integration/persistence/model"
)

// propertyRepository implements the revenue.PropertyRepository interface.
type propertyRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewPropertyRepository creates a new property repository instance.
func NewPropertyRepository(db *gorm.DB, queryTimeout time.Duration) revenue.PropertyRepository {
	return &propertyRepository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// GetByID resolves property metadata within a tenant.
func (r *propertyRepository) GetByID(
	ctx context.Context,
	propertyID, tenantID string,
) (*entity.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var m model.PropertyModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", propertyID, tenantID).
		First(&m).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewRevenueError(
				domainerror.ErrCodePropertyNotFound,
				"property not found: "+propertyID,
				domainerror.ErrPropertyNotFound,
			)
		}
		return nil, classifyStoreError(err)
	}

	return m.ToEntity(), nil
}
