// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/integration/persistence/model"
)

func seedProperty(t *testing.T, db *gorm.DB, id, tenantID, timezone, currency string) {
	t.Helper()

	m := &model.PropertyModel{
		ID:        id,
		TenantID:  tenantID,
		Name:      "Test Property",
		Timezone:  timezone,
		Currency:  currency,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed property: %v", err)
	}
}

func TestPropertyRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves property metadata", func(t *testing.T) {
		db := newTestDB(t)
		seedProperty(t, db, "prop-001", "t1", "America/Sao_Paulo", "BRL")

		repo := NewPropertyRepository(db, time.Second)
		prop, err := repo.GetByID(ctx, "prop-001", "t1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if prop.Timezone != "America/Sao_Paulo" {
			t.Errorf("expected timezone America/Sao_Paulo, got %s", prop.Timezone)
		}
		if prop.Currency != "BRL" {
			t.Errorf("expected currency BRL, got %s", prop.Currency)
		}
	})

	t.Run("unknown property is not found", func(t *testing.T) {
		db := newTestDB(t)

		repo := NewPropertyRepository(db, time.Second)
		_, err := repo.GetByID(ctx, "prop-404", "t1")
		if !errors.Is(err, domainerror.ErrPropertyNotFound) {
			t.Errorf("expected ErrPropertyNotFound, got %v", err)
		}
	})

	t.Run("property is not visible to another tenant", func(t *testing.T) {
		db := newTestDB(t)
		seedProperty(t, db, "prop-001", "t1", "UTC", "USD")

		repo := NewPropertyRepository(db, time.Second)
		_, err := repo.GetByID(ctx, "prop-001", "t2")
		if !errors.Is(err, domainerror.ErrPropertyNotFound) {
			t.Errorf("expected ErrPropertyNotFound for foreign tenant, got %v", err)
		}
	})
}
