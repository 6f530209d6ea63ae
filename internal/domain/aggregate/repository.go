package aggregate

import "context"

// Repository maintains the read projection. Refresh is a full rebuild;
// readers always observe either the old or the new complete projection.
type Repository interface {
	Refresh(ctx context.Context) error
	ListAll(ctx context.Context) ([]Row, error)
	ListByAuctionIDs(ctx context.Context, auctionIDs []string) ([]Row, error)
}
