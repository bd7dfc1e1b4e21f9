// Package revenue contains revenue aggregation use cases.
package revenue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staymetrics/backend/internal/domain/entity"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
)

// fakePropertyRepo serves a single property.
type fakePropertyRepo struct {
	property *entity.Property
	err      error
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, propertyID, tenantID string) (*entity.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.property, nil
}

func newMonthlyUseCase(repo *fakeRevenueRepo, props *fakePropertyRepo, ref ReferenceRevenueSource) *GetMonthlyRevenueUseCase {
	return NewGetMonthlyRevenueUseCase(repo, props, NewFallbackPolicy(ref), testCurrencies())
}

func TestGetMonthlyRevenueUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	saoPaulo := &entity.Property{
		ID: "prop-001", TenantID: "t1", Name: "Pousada Aurora",
		Timezone: "America/Sao_Paulo", Currency: "BRL",
	}

	t.Run("requires property_id", func(t *testing.T) {
		uc := newMonthlyUseCase(&fakeRevenueRepo{}, &fakePropertyRepo{}, nil)

		_, err := uc.Execute(ctx, GetMonthlyRevenueInput{Year: 2024, Month: 3})
		if !errors.Is(err, domainerror.ErrMissingPropertyID) {
			t.Errorf("expected ErrMissingPropertyID, got %v", err)
		}
	})

	t.Run("rejects out-of-range month", func(t *testing.T) {
		uc := newMonthlyUseCase(&fakeRevenueRepo{}, &fakePropertyRepo{}, nil)

		_, err := uc.Execute(ctx, GetMonthlyRevenueInput{PropertyID: "prop-001", Year: 2024, Month: 14})
		if !errors.Is(err, domainerror.ErrInvalidMonth) {
			t.Errorf("expected ErrInvalidMonth, got %v", err)
		}
	})

	t.Run("rejects non-positive year", func(t *testing.T) {
		uc := newMonthlyUseCase(&fakeRevenueRepo{}, &fakePropertyRepo{}, nil)

		_, err := uc.Execute(ctx, GetMonthlyRevenueInput{PropertyID: "prop-001", Year: 0, Month: 3})
		var revErr *domainerror.RevenueError
		if !errors.As(err, &revErr) || revErr.Code != domainerror.ErrCodeInvalidYear {
			t.Errorf("expected invalid year error, got %v", err)
		}
	})

	t.Run("buckets by the property's local month", func(t *testing.T) {
		repo := &fakeRevenueRepo{row: &RawAggregateRow{Total: "1200.00", Count: 3}}
		uc := newMonthlyUseCase(repo, &fakePropertyRepo{property: saoPaulo}, nil)

		out, err := uc.Execute(ctx, GetMonthlyRevenueInput{
			PropertyID: "prop-001", TenantID: "t1", Year: 2024, Month: 3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantStart := time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC)
		if !repo.lastBucket.Start.Equal(wantStart) {
			t.Errorf("expected bucket start %v, got %v", wantStart, repo.lastBucket.Start)
		}
		if !repo.lastBucket.End.Equal(wantEnd) {
			t.Errorf("expected bucket end %v, got %v", wantEnd, repo.lastBucket.End)
		}

		if out.Aggregate.Provenance != entity.ProvenanceLive {
			t.Errorf("expected live provenance, got %s", out.Aggregate.Provenance)
		}
		if !out.Aggregate.Total.Equal(decimal.RequireFromString("1200.00")) {
			t.Errorf("expected total 1200.00, got %s", out.Aggregate.Total)
		}
		if out.Year != 2024 || out.Month != 3 {
			t.Errorf("expected 2024-03 echoed, got %d-%d", out.Year, out.Month)
		}
	})

	t.Run("property currency wins over tenant config", func(t *testing.T) {
		repo := &fakeRevenueRepo{row: &RawAggregateRow{Total: "10.00", Count: 1}}
		uc := newMonthlyUseCase(repo, &fakePropertyRepo{property: saoPaulo}, nil)

		out, err := uc.Execute(ctx, GetMonthlyRevenueInput{
			PropertyID: "prop-001", TenantID: "t2", Year: 2024, Month: 1,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Aggregate.Currency != "BRL" {
			t.Errorf("expected property currency BRL, got %s", out.Aggregate.Currency)
		}
	})

	t.Run("unknown property propagates not-found", func(t *testing.T) {
		notFound := domainerror.NewRevenueError(
			domainerror.ErrCodePropertyNotFound,
			"property not found",
			domainerror.ErrPropertyNotFound,
		)
		uc := newMonthlyUseCase(&fakeRevenueRepo{}, &fakePropertyRepo{err: notFound}, nil)

		_, err := uc.Execute(ctx, GetMonthlyRevenueInput{PropertyID: "prop-404", Year: 2024, Month: 3})
		if !errors.Is(err, domainerror.ErrPropertyNotFound) {
			t.Errorf("expected ErrPropertyNotFound, got %v", err)
		}
	})

	t.Run("invalid property timezone is an integrity error", func(t *testing.T) {
		broken := &entity.Property{ID: "prop-001", TenantID: "t1", Timezone: "Mars/Olympus_Mons"}
		uc := newMonthlyUseCase(&fakeRevenueRepo{}, &fakePropertyRepo{property: broken}, nil)

		_, err := uc.Execute(ctx, GetMonthlyRevenueInput{PropertyID: "prop-001", Year: 2024, Month: 3})
		if !errors.Is(err, domainerror.ErrUnknownTimezone) {
			t.Errorf("expected ErrUnknownTimezone, got %v", err)
		}
	})

	t.Run("store failure degrades to a zero fallback, ignoring the reference table", func(t *testing.T) {
		repo := &fakeRevenueRepo{err: storeUnavailable()}
		ref := &fakeReference{total: decimal.RequireFromString("4975.50"), count: 4}
		uc := newMonthlyUseCase(repo, &fakePropertyRepo{property: saoPaulo}, ref)

		out, err := uc.Execute(ctx, GetMonthlyRevenueInput{
			PropertyID: "prop-001", TenantID: "t1", Year: 2024, Month: 3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Aggregate.Provenance != entity.ProvenanceFallback {
			t.Errorf("expected fallback provenance, got %s", out.Aggregate.Provenance)
		}
		// The reference table holds all-time figures, which would misstate a
		// single month.
		if !out.Aggregate.Total.IsZero() || out.Aggregate.Count != 0 {
			t.Errorf("expected zero monthly fallback, got total=%s count=%d", out.Aggregate.Total, out.Aggregate.Count)
		}
	})
}
