package memory

import (
	"context"
	"sync"
	"time"
)

// BatchLockRepository is a single-process advisory lock. The TTL guards
// against a crashed run leaving the flag set forever.
type BatchLockRepository struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	held     bool
	heldFrom time.Time
}

func NewBatchLockRepository(ttl time.Duration) *BatchLockRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &BatchLockRepository{ttl: ttl, now: time.Now}
}

func (r *BatchLockRepository) TryAcquire(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.held && now.Sub(r.heldFrom) < r.ttl {
		return false, nil
	}

	r.held = true
	r.heldFrom = now
	return true, nil
}

func (r *BatchLockRepository) Release(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.held = false
	return nil
}
