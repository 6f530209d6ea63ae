package auction

import "context"

type Repository interface {
	GetByID(ctx context.Context, auctionID string) (Auction, bool, error)
	// Latest returns the most recent auction by (year, cycle).
	Latest(ctx context.Context) (Auction, bool, error)
	ListByYear(ctx context.Context, year int) ([]Auction, error)

	ListPicksByAuctionIDs(ctx context.Context, auctionIDs []string) ([]Pick, error)

	ListPlayerEntries(ctx context.Context, auctionIDs []string) ([]PlayerEntry, error)
	// UpdateEntryPoints overwrites the cached points total for one player in
	// one auction. Budget fields are owned by the auction CRUD surface.
	UpdateEntryPoints(ctx context.Context, playerID, auctionID string, points int) error
}
