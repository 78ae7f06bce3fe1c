// Package querylog holds what every query log backend shares: the reader
// contract and the bounds on how much history one read may pull.
package querylog

import (
	"context"
	"time"

	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

const (
	DefaultLookback = time.Hour
	MaxLookback     = 30 * 24 * time.Hour

	DefaultLimit = 50_000
	MaxLimit     = 200_000
)

// Reader pulls executed queries from a database's own query log.
type Reader interface {
	// Source tags the records and runs built from this reader.
	Source() string
	ReadQueryLog(ctx context.Context, lookback time.Duration, limit int) ([]*entity.QueryRecord, error)
	ServerVersion(ctx context.Context) (string, error)
}

// Window applies defaults to zero values and rejects values above the maxima.
func Window(lookback time.Duration, limit int) (time.Duration, int, error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	if lookback > MaxLookback {
		return 0, 0, errwrap.Errorf("lookback too large: %s (max=%s)", lookback, MaxLookback)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		return 0, 0, errwrap.Errorf("limit too large: %d (max=%d)", limit, MaxLimit)
	}
	return lookback, limit, nil
}
