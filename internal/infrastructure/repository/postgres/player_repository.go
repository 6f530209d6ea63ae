package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moviedraft/movie-auction/internal/domain/player"
	qb "github.com/moviedraft/movie-auction/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID        int64  `db:"id"`
	PublicID  string `db:"public_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("id", "public_id", "first_name", "last_name").
		From("players").
		OrderBy("first_name ASC", "last_name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPlayer(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(playerIDs))
	for _, id := range playerIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("id", "public_id", "first_name", "last_name").
		From("players").
		Where(qb.In("public_id", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPlayer(row))
	}
	return out, nil
}

func mapPlayer(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.PublicID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
	}
}
