package helper

import (
	"context"

	errwrap "github.com/pkg/errors"
)

// CheckDeadline returns an error when ctx is already cancelled or past its
// deadline, so repositories fail before touching the database.
func CheckDeadline(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return errwrap.Wrap(ctx.Err(), "context deadline")
	default:
		return nil
	}
}
