package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moviedraft/movie-auction/internal/domain/movie"
	qb "github.com/moviedraft/movie-auction/internal/platform/querybuilder"
)

type MovieRepository struct {
	db *sqlx.DB
}

func NewMovieRepository(db *sqlx.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) ListAll(ctx context.Context) ([]movie.Movie, error) {
	query, args, err := qb.Select("*").
		From("movies").
		OrderBy("title ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list movies query: %w", err)
	}

	var rows []movieTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	out := make([]movie.Movie, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMovie(row))
	}
	return out, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, movieID string) (movie.Movie, bool, error) {
	query, args, err := qb.Select("*").
		From("movies").
		Where(qb.Eq("public_id", movieID)).
		ToSQL()
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("build get movie query: %w", err)
	}

	var row movieTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return movie.Movie{}, false, nil
		}
		return movie.Movie{}, false, fmt.Errorf("get movie: %w", err)
	}
	return mapMovie(row), true, nil
}

func (r *MovieRepository) FindByTitle(ctx context.Context, fragment string) (movie.Movie, bool, error) {
	query, args, err := qb.Select("*").
		From("movies").
		Where(qb.Expr("title ILIKE ?", "%"+fragment+"%")).
		OrderBy("title ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("build find movie query: %w", err)
	}

	var row movieTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return movie.Movie{}, false, nil
		}
		return movie.Movie{}, false, fmt.Errorf("find movie by title: %w", err)
	}
	return mapMovie(row), true, nil
}

func (r *MovieRepository) UpdateLinks(ctx context.Context, movieID, imdbURL, letterboxdURL string) error {
	query, args, err := qb.Update("movies").
		Set("imdb_url", imdbURL).
		Set("letterboxd_url", letterboxdURL).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", movieID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update movie links query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update movie links: %w", err)
	}
	return nil
}

func mapMovie(row movieTableModel) movie.Movie {
	return movie.Movie{
		ID:                     row.PublicID,
		Title:                  row.Title,
		Genre:                  row.Genre,
		ActualReleaseDate:      row.ActualReleaseDate,
		AnticipatedReleaseDate: row.AnticipatedReleaseDate,
		IMDBURL:                row.IMDBURL,
		LetterboxdURL:          row.LetterboxdURL,
	}
}
