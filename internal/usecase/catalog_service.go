package usecase

import (
	"context"
	"fmt"

	"github.com/moviedraft/movie-auction/internal/domain/movie"
	"github.com/moviedraft/movie-auction/internal/domain/player"
	"github.com/moviedraft/movie-auction/internal/domain/stats"
)

// MovieWithStats pairs a movie with its reconciled stats, when any exist.
type MovieWithStats struct {
	Movie movie.Movie
	Stats *stats.MovieStats
}

// CatalogService serves the thin read endpoints around the core pipeline.
type CatalogService struct {
	movieRepo  movie.Repository
	playerRepo player.Repository
	statsRepo  stats.Repository
}

func NewCatalogService(movieRepo movie.Repository, playerRepo player.Repository, statsRepo stats.Repository) *CatalogService {
	return &CatalogService{
		movieRepo:  movieRepo,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
	}
}

func (s *CatalogService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "catalog.list_players")
	defer span.End()

	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *CatalogService) ListMovies(ctx context.Context) ([]MovieWithStats, error) {
	ctx, span := startUsecaseSpan(ctx, "catalog.list_movies")
	defer span.End()

	movies, err := s.movieRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	out := make([]MovieWithStats, 0, len(movies))
	for _, m := range movies {
		row, found, err := s.statsRepo.GetByMovieID(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("load stats for movie %s: %w", m.ID, err)
		}
		item := MovieWithStats{Movie: m}
		if found {
			statsCopy := row
			item.Stats = &statsCopy
		}
		out = append(out, item)
	}
	return out, nil
}
