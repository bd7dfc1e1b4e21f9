// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewStaticReferenceSource(t *testing.T) {
	t.Run("empty table means no source", func(t *testing.T) {
		src, err := NewStaticReferenceSource("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if src != nil {
			t.Error("expected nil source for empty configuration")
		}
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		if _, err := NewStaticReferenceSource("{broken"); err == nil {
			t.Fatal("expected error for invalid JSON")
		}
	})

	t.Run("malformed totals are rejected at load", func(t *testing.T) {
		if _, err := NewStaticReferenceSource(`{"prop-001": {"total": "lots", "count": 1}}`); err == nil {
			t.Fatal("expected error for malformed total")
		}
	})

	t.Run("negative counts are rejected at load", func(t *testing.T) {
		if _, err := NewStaticReferenceSource(`{"prop-001": {"total": "10.00", "count": -1}}`); err == nil {
			t.Fatal("expected error for negative count")
		}
	})
}

func TestStaticReferenceSource_Lookup(t *testing.T) {
	src, err := NewStaticReferenceSource(`{
		"prop-001": {"total": "2250.000", "count": 4},
		"t2:prop-001": {"total": "90.00", "count": 1}
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("unqualified entry serves any tenant", func(t *testing.T) {
		fig, ok := src.Lookup("prop-001", "t1")
		if !ok {
			t.Fatal("expected a figure")
		}
		if !fig.Total.Equal(decimal.RequireFromString("2250.000")) {
			t.Errorf("expected 2250.000, got %s", fig.Total)
		}
		if fig.Count != 4 {
			t.Errorf("expected count 4, got %d", fig.Count)
		}
	})

	t.Run("tenant-qualified entry wins", func(t *testing.T) {
		fig, ok := src.Lookup("prop-001", "t2")
		if !ok {
			t.Fatal("expected a figure")
		}
		if !fig.Total.Equal(decimal.RequireFromString("90.00")) {
			t.Errorf("expected tenant-qualified 90.00, got %s", fig.Total)
		}
	})

	t.Run("unknown property has no figure", func(t *testing.T) {
		if _, ok := src.Lookup("prop-404", "t1"); ok {
			t.Error("expected no figure for unknown property")
		}
	})
}
