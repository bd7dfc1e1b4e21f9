// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/staymetrics/backend/internal/domain/entity"
	"github.com/staymetrics/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps the in-memory database alive across queries.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.PropertyModel{}, &model.ReservationModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedReservation(t *testing.T, db *gorm.DB, propertyID, tenantID, amount, status string, checkIn time.Time) {
	t.Helper()

	m := &model.ReservationModel{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		TenantID:    tenantID,
		GuestName:   "Test Guest",
		TotalAmount: decimal.RequireFromString(amount),
		CheckInDate: checkIn,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
}

func TestRevenueRepository_AggregateAll(t *testing.T) {
	ctx := context.Background()
	checkIn := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("sums all confirmed reservations for the scope", func(t *testing.T) {
		db := newTestDB(t)
		seedReservation(t, db, "prop-002", "t1", "1200.50", "confirmed", checkIn)
		seedReservation(t, db, "prop-002", "t1", "1350.00", "confirmed", checkIn)
		seedReservation(t, db, "prop-002", "t1", "1425.00", "confirmed", checkIn)
		seedReservation(t, db, "prop-002", "t1", "1000.00", "confirmed", checkIn)

		repo := NewRevenueRepository(db, time.Second)
		row, err := repo.AggregateAll(ctx, "prop-002", "t1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		total := decimal.RequireFromString(row.Total)
		if !total.Equal(decimal.RequireFromString("4975.50")) {
			t.Errorf("expected total 4975.50, got %s", row.Total)
		}
		if row.Count != 4 {
			t.Errorf("expected count 4, got %d", row.Count)
		}
		if row.TenantID != "t1" {
			t.Errorf("expected tenant t1, got %s", row.TenantID)
		}
	})

	t.Run("excludes cancelled reservations", func(t *testing.T) {
		db := newTestDB(t)
		seedReservation(t, db, "prop-001", "t1", "500.00", "confirmed", checkIn)
		seedReservation(t, db, "prop-001", "t1", "9999.00", "cancelled", checkIn)

		repo := NewRevenueRepository(db, time.Second)
		row, err := repo.AggregateAll(ctx, "prop-001", "t1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !decimal.RequireFromString(row.Total).Equal(decimal.RequireFromString("500.00")) {
			t.Errorf("expected total 500.00, got %s", row.Total)
		}
		if row.Count != 1 {
			t.Errorf("expected count 1, got %d", row.Count)
		}
	})

	t.Run("isolates tenants sharing a property id", func(t *testing.T) {
		db := newTestDB(t)
		seedReservation(t, db, "prop-001", "t1", "100.00", "confirmed", checkIn)
		seedReservation(t, db, "prop-001", "t2", "777.00", "confirmed", checkIn)

		repo := NewRevenueRepository(db, time.Second)
		row, err := repo.AggregateAll(ctx, "prop-001", "t1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !decimal.RequireFromString(row.Total).Equal(decimal.RequireFromString("100.00")) {
			t.Errorf("expected only t1 revenue 100.00, got %s", row.Total)
		}
		if row.Count != 1 {
			t.Errorf("expected count 1, got %d", row.Count)
		}
	})

	t.Run("no matching rows is a zero result", func(t *testing.T) {
		db := newTestDB(t)

		repo := NewRevenueRepository(db, time.Second)
		row, err := repo.AggregateAll(ctx, "prop-404", "t1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !decimal.RequireFromString(row.Total).IsZero() {
			t.Errorf("expected zero total, got %s", row.Total)
		}
		if row.Count != 0 {
			t.Errorf("expected count 0, got %d", row.Count)
		}
		if row.PropertyID != "prop-404" || row.TenantID != "t1" {
			t.Errorf("expected requested scope echoed, got %s/%s", row.PropertyID, row.TenantID)
		}
	})
}

func TestRevenueRepository_AggregateRange(t *testing.T) {
	ctx := context.Background()

	bucket := entity.TimeBucket{
		Start: time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC),
	}

	t.Run("half-open bucket boundaries", func(t *testing.T) {
		db := newTestDB(t)
		// Exactly at start: included.
		seedReservation(t, db, "prop-001", "t1", "100.00", "confirmed", bucket.Start)
		// Inside, in naive-UTC April but local March.
		seedReservation(t, db, "prop-001", "t1", "200.00", "confirmed", time.Date(2024, 4, 1, 2, 30, 0, 0, time.UTC))
		// Exactly at end: excluded.
		seedReservation(t, db, "prop-001", "t1", "400.00", "confirmed", bucket.End)
		// Before start: excluded.
		seedReservation(t, db, "prop-001", "t1", "800.00", "confirmed", bucket.Start.Add(-time.Minute))

		repo := NewRevenueRepository(db, time.Second)
		row, err := repo.AggregateRange(ctx, "prop-001", "t1", bucket)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !decimal.RequireFromString(row.Total).Equal(decimal.RequireFromString("300.00")) {
			t.Errorf("expected total 300.00, got %s", row.Total)
		}
		if row.Count != 2 {
			t.Errorf("expected count 2, got %d", row.Count)
		}
	})

	t.Run("empty month is a zero result", func(t *testing.T) {
		db := newTestDB(t)
		seedReservation(t, db, "prop-001", "t1", "100.00", "confirmed", bucket.End.Add(time.Hour))

		repo := NewRevenueRepository(db, time.Second)
		row, err := repo.AggregateRange(ctx, "prop-001", "t1", bucket)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !decimal.RequireFromString(row.Total).IsZero() || row.Count != 0 {
			t.Errorf("expected zero result, got total=%s count=%d", row.Total, row.Count)
		}
	})
}
