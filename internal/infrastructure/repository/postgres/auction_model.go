package postgres

import "time"

type auctionTableModel struct {
	ID              int64  `db:"id"`
	PublicID        string `db:"public_id"`
	Name            string `db:"name"`
	Year            int    `db:"year"`
	Cycle           int    `db:"cycle"`
	BudgetPerPlayer int64  `db:"budget_per_player"`
	Status          string `db:"status"`
}

type pickTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	PlayerID  string    `db:"player_public_id"`
	MovieID   string    `db:"movie_public_id"`
	AuctionID string    `db:"auction_public_id"`
	Amount    int64     `db:"amount"`
	PickedAt  time.Time `db:"picked_at"`
}

type playerEntryTableModel struct {
	ID              int64  `db:"id"`
	PlayerID        string `db:"player_public_id"`
	AuctionID       string `db:"auction_public_id"`
	RemainingBudget int64  `db:"remaining_budget"`
	TotalSpent      int64  `db:"total_spent"`
	TotalPoints     int    `db:"total_points"`
}
