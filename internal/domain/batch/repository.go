package batch

import "context"

// LockRepository guards batch reconciliation runs so overlapping triggers do
// not double-process movies.
type LockRepository interface {
	// TryAcquire reports whether the caller now holds the batch lock.
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}
