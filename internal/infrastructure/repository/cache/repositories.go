package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/moviedraft/movie-auction/internal/domain/movie"
	"github.com/moviedraft/movie-auction/internal/domain/player"
	basecache "github.com/moviedraft/movie-auction/internal/platform/cache"
)

// MovieRepository caches movie reads. Movies change rarely (only external
// links are rewritten), so writes invalidate the whole movie keyspace rather
// than tracking individual entries.
type MovieRepository struct {
	next  movie.Repository
	cache *basecache.Store
}

func NewMovieRepository(next movie.Repository, cache *basecache.Store) *MovieRepository {
	return &MovieRepository{next: next, cache: cache}
}

func (r *MovieRepository) ListAll(ctx context.Context) ([]movie.Movie, error) {
	v, err := r.cache.GetOrLoad(ctx, "movie:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]movie.Movie(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]movie.Movie)
	return append([]movie.Movie(nil), items...), nil
}

func (r *MovieRepository) GetByID(ctx context.Context, movieID string) (movie.Movie, bool, error) {
	key := "movie:id:" + movieID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, movieID)
		if err != nil {
			return nil, err
		}
		return cachedMovie{value: item, exists: exists}, nil
	})
	if err != nil {
		return movie.Movie{}, false, err
	}

	cached, _ := v.(cachedMovie)
	return cached.value, cached.exists, nil
}

func (r *MovieRepository) FindByTitle(ctx context.Context, fragment string) (movie.Movie, bool, error) {
	key := "movie:title:" + strings.ToLower(fragment)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByTitle(ctx, fragment)
		if err != nil {
			return nil, err
		}
		return cachedMovie{value: item, exists: exists}, nil
	})
	if err != nil {
		return movie.Movie{}, false, err
	}

	cached, _ := v.(cachedMovie)
	return cached.value, cached.exists, nil
}

func (r *MovieRepository) UpdateLinks(ctx context.Context, movieID, imdbURL, letterboxdURL string) error {
	if err := r.next.UpdateLinks(ctx, movieID, imdbURL, letterboxdURL); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "movie:")
	return nil
}

type cachedMovie struct {
	value  movie.Movie
	exists bool
}

// PlayerRepository caches player reads. The roster never changes at runtime.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := "player:ids:" + strings.Join(ids, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}
