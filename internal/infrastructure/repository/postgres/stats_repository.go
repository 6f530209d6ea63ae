package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moviedraft/movie-auction/internal/domain/stats"
	qb "github.com/moviedraft/movie-auction/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetByMovieID(ctx context.Context, movieID string) (stats.MovieStats, bool, error) {
	query, args, err := qb.Select("*").
		From("movie_stats").
		Where(qb.Eq("movie_public_id", movieID)).
		ToSQL()
	if err != nil {
		return stats.MovieStats{}, false, fmt.Errorf("build get movie stats query: %w", err)
	}

	var row movieStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stats.MovieStats{}, false, nil
		}
		return stats.MovieStats{}, false, fmt.Errorf("get movie stats: %w", err)
	}

	return stats.MovieStats{
		MovieID:            row.MovieID,
		CriticScore:        intPtrFromNull(row.CriticScore),
		DomesticGross:      row.DomesticGross,
		InternationalGross: row.InternationalGross,
		OscarNominations:   intPtrFromNull(row.OscarNominations),
		OscarWins:          row.OscarWins,
		UpdatedAt:          row.UpdatedAt,
	}, true, nil
}

func (r *StatsRepository) Upsert(ctx context.Context, row stats.MovieStats) error {
	insertModel := movieStatsInsertModel{
		MovieID:            row.MovieID,
		CriticScore:        nullableInt(row.CriticScore),
		DomesticGross:      row.DomesticGross,
		InternationalGross: row.InternationalGross,
		OscarNominations:   nullableInt(row.OscarNominations),
		OscarWins:          row.OscarWins,
		UpdatedAt:          row.UpdatedAt,
	}
	query, args, err := qb.InsertModel("movie_stats", insertModel, `ON CONFLICT (movie_public_id)
DO UPDATE SET
    critic_score = EXCLUDED.critic_score,
    domestic_gross = EXCLUDED.domestic_gross,
    international_gross = EXCLUDED.international_gross,
    oscar_nominations = EXCLUDED.oscar_nominations,
    oscar_wins = EXCLUDED.oscar_wins,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert movie stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert movie stats: %w", err)
	}
	return nil
}
