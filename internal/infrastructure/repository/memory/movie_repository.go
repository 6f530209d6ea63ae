package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/moviedraft/movie-auction/internal/domain/movie"
)

type MovieRepository struct {
	mu    sync.RWMutex
	items map[string]movie.Movie
	order []string
}

func NewMovieRepository(movies []movie.Movie) *MovieRepository {
	items := make(map[string]movie.Movie, len(movies))
	order := make([]string, 0, len(movies))

	for _, m := range movies {
		items[m.ID] = m
		order = append(order, m.ID)
	}

	r := &MovieRepository{items: items, order: order}
	r.sortOrderLocked()
	return r
}

func (r *MovieRepository) ListAll(_ context.Context) ([]movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]movie.Movie, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *MovieRepository) GetByID(_ context.Context, movieID string) (movie.Movie, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[movieID]
	if !ok {
		return movie.Movie{}, false, nil
	}
	return m, true, nil
}

func (r *MovieRepository) FindByTitle(_ context.Context, fragment string) (movie.Movie, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(fragment)
	for _, id := range r.order {
		m := r.items[id]
		if strings.Contains(strings.ToLower(m.Title), needle) {
			return m, true, nil
		}
	}
	return movie.Movie{}, false, nil
}

func (r *MovieRepository) UpdateLinks(_ context.Context, movieID, imdbURL, letterboxdURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[movieID]
	if !ok {
		return nil
	}
	m.IMDBURL = imdbURL
	m.LetterboxdURL = letterboxdURL
	r.items[movieID] = m
	return nil
}

func (r *MovieRepository) sortOrderLocked() {
	sort.SliceStable(r.order, func(i, j int) bool {
		return strings.ToLower(r.items[r.order[i]].Title) < strings.ToLower(r.items[r.order[j]].Title)
	})
}
