package stats

import "context"

// Repository is the upsert target for reconciled stats. Only the reconciler
// writes here.
type Repository interface {
	GetByMovieID(ctx context.Context, movieID string) (MovieStats, bool, error)
	Upsert(ctx context.Context, row MovieStats) error
}
