// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	domainerror "github.com/staymetrics/backend/internal/domain/error"
)

// classifyStoreError maps infrastructure-level query failures onto the two
// transient error codes the fallback policy is allowed to absorb. Anything
// that is not clearly a connectivity or deadline problem (bad SQL, scan
// mismatches, constraint violations) is returned untagged so it propagates
// as a real failure instead of being silently papered over.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domainerror.NewRevenueError(
			domainerror.ErrCodeStoreTimeout,
			"reservation store query exceeded its deadline",
			errors.Join(domainerror.ErrStoreTimeout, err),
		)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return domainerror.NewRevenueError(
				domainerror.ErrCodeStoreTimeout,
				"reservation store connection timed out",
				errors.Join(domainerror.ErrStoreTimeout, err),
			)
		}
		return domainerror.NewRevenueError(
			domainerror.ErrCodeStoreUnavailable,
			"reservation store is unreachable",
			errors.Join(domainerror.ErrStoreUnavailable, err),
		)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return domainerror.NewRevenueError(
			domainerror.ErrCodeStoreUnavailable,
			"reservation store connection is unusable",
			errors.Join(domainerror.ErrStoreUnavailable, err),
		)
	}

	return fmt.Errorf("reservation store query failed: %w", err)
}
