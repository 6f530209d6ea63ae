package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// batchLockKey identifies the stats-update advisory lock. Any session
// holding it blocks overlapping batch runs across all app instances.
const batchLockKey int64 = 0x6d6f766965 // "movie"

// BatchLockRepository guards the batch run with a postgres advisory lock.
// Advisory locks are session-scoped, so the lock is held on a pinned
// connection rather than the shared pool.
type BatchLockRepository struct {
	db *sqlx.DB

	mu   sync.Mutex
	conn *sqlx.Conn
}

func NewBatchLockRepository(db *sqlx.DB) *BatchLockRepository {
	return &BatchLockRepository{db: db}
}

func (r *BatchLockRepository) TryAcquire(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn != nil {
		return false, nil
	}

	conn, err := r.db.Connx(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire batch lock connection: %w", err)
	}

	var acquired bool
	if err := conn.GetContext(ctx, &acquired, "SELECT pg_try_advisory_lock($1)", batchLockKey); err != nil {
		conn.Close()
		return false, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !acquired {
		conn.Close()
		return false, nil
	}

	r.conn = conn
	return true, nil
}

func (r *BatchLockRepository) Release(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return fmt.Errorf("release batch lock: lock %d is not held", batchLockKey)
	}

	conn := r.conn
	r.conn = nil
	defer conn.Close()

	var released bool
	if err := conn.GetContext(ctx, &released, "SELECT pg_advisory_unlock($1)", batchLockKey); err != nil {
		return fmt.Errorf("release batch lock: %w", err)
	}
	if !released {
		return fmt.Errorf("release batch lock: lock %d was not held by this session", batchLockKey)
	}
	return nil
}
