package memory

import (
	"context"
	"sync"

	"github.com/moviedraft/movie-auction/internal/domain/stats"
)

type StatsRepository struct {
	mu    sync.RWMutex
	items map[string]stats.MovieStats
}

func NewStatsRepository(rows []stats.MovieStats) *StatsRepository {
	items := make(map[string]stats.MovieStats, len(rows))
	for _, row := range rows {
		items[row.MovieID] = cloneStats(row)
	}
	return &StatsRepository{items: items}
}

func (r *StatsRepository) GetByMovieID(_ context.Context, movieID string) (stats.MovieStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[movieID]
	if !ok {
		return stats.MovieStats{}, false, nil
	}
	return cloneStats(item), true, nil
}

func (r *StatsRepository) Upsert(_ context.Context, item stats.MovieStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.MovieID] = cloneStats(item)
	return nil
}

func cloneStats(item stats.MovieStats) stats.MovieStats {
	copied := item
	if item.CriticScore != nil {
		v := *item.CriticScore
		copied.CriticScore = &v
	}
	if item.OscarNominations != nil {
		v := *item.OscarNominations
		copied.OscarNominations = &v
	}
	return copied
}
