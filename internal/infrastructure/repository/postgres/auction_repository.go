package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moviedraft/movie-auction/internal/domain/auction"
	qb "github.com/moviedraft/movie-auction/internal/platform/querybuilder"
)

type AuctionRepository struct {
	db *sqlx.DB
}

func NewAuctionRepository(db *sqlx.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

func (r *AuctionRepository) GetByID(ctx context.Context, auctionID string) (auction.Auction, bool, error) {
	query, args, err := qb.Select("*").
		From("auctions").
		Where(qb.Eq("public_id", auctionID)).
		ToSQL()
	if err != nil {
		return auction.Auction{}, false, fmt.Errorf("build get auction query: %w", err)
	}

	var row auctionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return auction.Auction{}, false, nil
		}
		return auction.Auction{}, false, fmt.Errorf("get auction: %w", err)
	}
	return mapAuction(row), true, nil
}

func (r *AuctionRepository) Latest(ctx context.Context) (auction.Auction, bool, error) {
	query, args, err := qb.Select("*").
		From("auctions").
		OrderBy("year DESC", "cycle DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return auction.Auction{}, false, fmt.Errorf("build latest auction query: %w", err)
	}

	var row auctionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return auction.Auction{}, false, nil
		}
		return auction.Auction{}, false, fmt.Errorf("get latest auction: %w", err)
	}
	return mapAuction(row), true, nil
}

func (r *AuctionRepository) ListByYear(ctx context.Context, year int) ([]auction.Auction, error) {
	query, args, err := qb.Select("*").
		From("auctions").
		Where(qb.Eq("year", year)).
		OrderBy("cycle ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list auctions by year query: %w", err)
	}

	var rows []auctionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list auctions by year: %w", err)
	}

	out := make([]auction.Auction, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAuction(row))
	}
	return out, nil
}

func (r *AuctionRepository) ListPicksByAuctionIDs(ctx context.Context, auctionIDs []string) ([]auction.Pick, error) {
	if len(auctionIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(auctionIDs))
	for _, id := range auctionIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").
		From("picks").
		Where(qb.In("auction_public_id", ids)).
		OrderBy("picked_at ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]auction.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, auction.Pick{
			ID:        row.PublicID,
			PlayerID:  row.PlayerID,
			MovieID:   row.MovieID,
			AuctionID: row.AuctionID,
			Amount:    row.Amount,
			PickedAt:  row.PickedAt,
		})
	}
	return out, nil
}

func (r *AuctionRepository) ListPlayerEntries(ctx context.Context, auctionIDs []string) ([]auction.PlayerEntry, error) {
	if len(auctionIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(auctionIDs))
	for _, id := range auctionIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").
		From("auction_entries").
		Where(qb.In("auction_public_id", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list auction entries query: %w", err)
	}

	var rows []playerEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list auction entries: %w", err)
	}

	out := make([]auction.PlayerEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, auction.PlayerEntry{
			PlayerID:        row.PlayerID,
			AuctionID:       row.AuctionID,
			RemainingBudget: row.RemainingBudget,
			TotalSpent:      row.TotalSpent,
			TotalPoints:     row.TotalPoints,
		})
	}
	return out, nil
}

func (r *AuctionRepository) UpdateEntryPoints(ctx context.Context, playerID, auctionID string, points int) error {
	query, args, err := qb.Update("auction_entries").
		Set("total_points", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("player_public_id", playerID)).
		Where(qb.Eq("auction_public_id", auctionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update entry points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update entry points: %w", err)
	}
	return nil
}

func mapAuction(row auctionTableModel) auction.Auction {
	return auction.Auction{
		ID:              row.PublicID,
		Name:            row.Name,
		Year:            row.Year,
		Cycle:           row.Cycle,
		BudgetPerPlayer: row.BudgetPerPlayer,
		Status:          auction.Status(row.Status),
	}
}
