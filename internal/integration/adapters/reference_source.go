// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	"github.com/staymetrics/backend/internal/domain/valueobject"
)

// referenceEntry is the configured JSON shape of one reference figure.
type referenceEntry struct {
	Total string `json:"total"`
	Count int    `json:"count"`
}

// staticReferenceSource serves operator-configured per-property revenue
// figures to the fallback policy. The table is loaded once from
// configuration; it is reference data for degraded operation, never a
// substitute for the live store, and everything served from it carries
// fallback provenance.
type staticReferenceSource struct {
	figures map[string]revenue.ReferenceFigure
}

// NewStaticReferenceSource parses a JSON reference table of the form
//
//	{"prop-001": {"total": "2250.000", "count": 4},
//	 "t2:prop-001": {"total": "90.00", "count": 1}}
//
// Keys are property ids, optionally tenant-qualified as "tenant:property";
// the qualified key wins on lookup. Returns nil for an empty table so
// callers can configure no source at all.
func NewStaticReferenceSource(rawJSON string) (revenue.ReferenceRevenueSource, error) {
	if rawJSON == "" {
		return nil, nil
	}

	var entries map[string]referenceEntry
	if err := json.Unmarshal([]byte(rawJSON), &entries); err != nil {
		return nil, fmt.Errorf("invalid revenue reference table: %w", err)
	}

	figures := make(map[string]revenue.ReferenceFigure, len(entries))
	for key, e := range entries {
		total, err := valueobject.ParseAmount(e.Total)
		if err != nil {
			return nil, fmt.Errorf("revenue reference table entry %q: %w", key, err)
		}
		if e.Count < 0 {
			return nil, fmt.Errorf("revenue reference table entry %q: negative count", key)
		}
		figures[key] = revenue.ReferenceFigure{Total: total, Count: e.Count}
	}

	return &staticReferenceSource{figures: figures}, nil
}

// Lookup returns the configured figure for the property, preferring a
// tenant-qualified entry.
func (s *staticReferenceSource) Lookup(propertyID, tenantID string) (*revenue.ReferenceFigure, bool) {
	if fig, ok := s.figures[tenantID+":"+propertyID]; ok {
		return &fig, true
	}
	if fig, ok := s.figures[propertyID]; ok {
		return &fig, true
	}
	return nil, false
}
