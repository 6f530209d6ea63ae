package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moviedraft/movie-auction/internal/domain/aggregate"
	qb "github.com/moviedraft/movie-auction/internal/platform/querybuilder"
)

const aggregateView = "movie_picks_with_stats"

type aggregateRowModel struct {
	PlayerID           string        `db:"player_public_id"`
	PlayerName         string        `db:"player_name"`
	AuctionID          string        `db:"auction_public_id"`
	AuctionYear        int           `db:"auction_year"`
	AuctionCycle       int           `db:"auction_cycle"`
	MovieID            string        `db:"movie_public_id"`
	MovieTitle         string        `db:"movie_title"`
	MovieGenre         string        `db:"movie_genre"`
	Amount             int64         `db:"amount"`
	CriticScore        sql.NullInt64 `db:"critic_score"`
	DomesticGross      int64         `db:"domestic_gross"`
	InternationalGross int64         `db:"international_gross"`
	OscarNominations   sql.NullInt64 `db:"oscar_nominations"`
	OscarWins          int           `db:"oscar_wins"`
}

type AggregateRepository struct {
	db *sqlx.DB
}

func NewAggregateRepository(db *sqlx.DB) *AggregateRepository {
	return &AggregateRepository{db: db}
}

// Refresh rebuilds the projection in place. The view carries a unique
// index on (player_public_id, movie_public_id, auction_public_id) so the
// concurrent variant can run without blocking readers.
func (r *AggregateRepository) Refresh(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "REFRESH MATERIALIZED VIEW CONCURRENTLY "+aggregateView); err != nil {
		return fmt.Errorf("refresh %s: %w", aggregateView, err)
	}
	return nil
}

func (r *AggregateRepository) ListAll(ctx context.Context) ([]aggregate.Row, error) {
	query, args, err := qb.Select("*").
		From(aggregateView).
		OrderBy("auction_year ASC", "auction_cycle ASC", "player_name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list aggregate rows query: %w", err)
	}
	return r.selectRows(ctx, query, args)
}

func (r *AggregateRepository) ListByAuctionIDs(ctx context.Context, auctionIDs []string) ([]aggregate.Row, error) {
	if len(auctionIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(auctionIDs))
	for _, id := range auctionIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").
		From(aggregateView).
		Where(qb.In("auction_public_id", ids)).
		OrderBy("player_name ASC", "amount DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list aggregate rows by auction query: %w", err)
	}
	return r.selectRows(ctx, query, args)
}

func (r *AggregateRepository) selectRows(ctx context.Context, query string, args []any) ([]aggregate.Row, error) {
	var rows []aggregateRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list aggregate rows: %w", err)
	}

	out := make([]aggregate.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, aggregate.Row{
			PlayerID:           row.PlayerID,
			PlayerName:         row.PlayerName,
			AuctionID:          row.AuctionID,
			AuctionYear:        row.AuctionYear,
			AuctionCycle:       row.AuctionCycle,
			MovieID:            row.MovieID,
			MovieTitle:         row.MovieTitle,
			MovieGenre:         row.MovieGenre,
			Amount:             row.Amount,
			CriticScore:        intPtrFromNull(row.CriticScore),
			DomesticGross:      row.DomesticGross,
			InternationalGross: row.InternationalGross,
			OscarNominations:   intPtrFromNull(row.OscarNominations),
			OscarWins:          row.OscarWins,
		})
	}
	return out, nil
}
