// Package revenue contains revenue aggregation use cases.
package revenue

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/staymetrics/backend/internal/domain/error"
)

func TestResolveMonthBucket(t *testing.T) {
	t.Run("rejects month below range", func(t *testing.T) {
		_, err := ResolveMonthBucket(2024, 0, time.UTC)
		if !errors.Is(err, domainerror.ErrInvalidMonth) {
			t.Errorf("expected ErrInvalidMonth, got %v", err)
		}
	})

	t.Run("rejects month above range", func(t *testing.T) {
		_, err := ResolveMonthBucket(2024, 13, time.UTC)
		if !errors.Is(err, domainerror.ErrInvalidMonth) {
			t.Errorf("expected ErrInvalidMonth, got %v", err)
		}
	})

	t.Run("UTC month is a plain calendar month", func(t *testing.T) {
		bucket, err := ResolveMonthBucket(2024, 2, time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantStart := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		if !bucket.Start.Equal(wantStart) {
			t.Errorf("expected start %v, got %v", wantStart, bucket.Start)
		}
		if !bucket.End.Equal(wantEnd) {
			t.Errorf("expected end %v, got %v", wantEnd, bucket.End)
		}
	})

	t.Run("december rolls over to january", func(t *testing.T) {
		bucket, err := ResolveMonthBucket(2024, 12, time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		if !bucket.End.Equal(wantEnd) {
			t.Errorf("expected end %v, got %v", wantEnd, bucket.End)
		}
	})

	t.Run("negative-offset zone shifts the UTC boundary", func(t *testing.T) {
		loc, err := time.LoadLocation("America/Sao_Paulo")
		if err != nil {
			t.Fatalf("failed to load zone: %v", err)
		}

		bucket, err := ResolveMonthBucket(2024, 3, loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Midnight local on April 1st is 03:00 UTC.
		wantEnd := time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC)
		if !bucket.End.Equal(wantEnd) {
			t.Errorf("expected end %v, got %v", wantEnd, bucket.End)
		}

		// A late-evening local check-in on March 31st sits in April when
		// viewed in naive UTC, but belongs to the March bucket.
		checkIn := time.Date(2024, 4, 1, 2, 30, 0, 0, time.UTC)
		if !bucket.Contains(checkIn) {
			t.Errorf("expected March bucket to contain %v", checkIn)
		}

		naiveMarchEnd := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		if !checkIn.After(naiveMarchEnd) {
			t.Fatal("test premise broken: check-in should fall outside a naive UTC March")
		}
	})

	t.Run("positive-offset zone starts the month earlier in UTC", func(t *testing.T) {
		loc, err := time.LoadLocation("Asia/Tokyo")
		if err != nil {
			t.Fatalf("failed to load zone: %v", err)
		}

		bucket, err := ResolveMonthBucket(2024, 7, loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantStart := time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)
		if !bucket.Start.Equal(wantStart) {
			t.Errorf("expected start %v, got %v", wantStart, bucket.Start)
		}
	})

	t.Run("bucket end is exclusive", func(t *testing.T) {
		bucket, err := ResolveMonthBucket(2024, 1, time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if bucket.Contains(bucket.End) {
			t.Error("expected bucket end to be exclusive")
		}
		if !bucket.Contains(bucket.Start) {
			t.Error("expected bucket start to be inclusive")
		}
	})
}
