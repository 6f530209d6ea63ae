package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/moviedraft/movie-auction/internal/domain/auction"
)

type AuctionRepository struct {
	mu       sync.RWMutex
	auctions map[string]auction.Auction
	picks    []auction.Pick
	entries  map[string]auction.PlayerEntry
}

func NewAuctionRepository(auctions []auction.Auction, picks []auction.Pick, entries []auction.PlayerEntry) *AuctionRepository {
	items := make(map[string]auction.Auction, len(auctions))
	for _, a := range auctions {
		items[a.ID] = a
	}

	entryItems := make(map[string]auction.PlayerEntry, len(entries))
	for _, e := range entries {
		entryItems[entryKey(e.PlayerID, e.AuctionID)] = e
	}

	copied := make([]auction.Pick, len(picks))
	copy(copied, picks)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].PickedAt.Before(copied[j].PickedAt)
	})

	return &AuctionRepository{
		auctions: items,
		picks:    copied,
		entries:  entryItems,
	}
}

func (r *AuctionRepository) GetByID(_ context.Context, auctionID string) (auction.Auction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return auction.Auction{}, false, nil
	}
	return a, true, nil
}

func (r *AuctionRepository) Latest(_ context.Context) (auction.Auction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest auction.Auction
	found := false
	for _, a := range r.auctions {
		if !found || a.Year > latest.Year || (a.Year == latest.Year && a.Cycle > latest.Cycle) {
			latest = a
			found = true
		}
	}
	return latest, found, nil
}

func (r *AuctionRepository) ListByYear(_ context.Context, year int) ([]auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]auction.Auction, 0, len(r.auctions))
	for _, a := range r.auctions {
		if a.Year == year {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cycle < out[j].Cycle })
	return out, nil
}

func (r *AuctionRepository) ListPicksByAuctionIDs(_ context.Context, auctionIDs []string) ([]auction.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(auctionIDs))
	for _, id := range auctionIDs {
		wanted[id] = struct{}{}
	}

	out := make([]auction.Pick, 0)
	for _, p := range r.picks {
		if _, ok := wanted[p.AuctionID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *AuctionRepository) ListPlayerEntries(_ context.Context, auctionIDs []string) ([]auction.PlayerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(auctionIDs))
	for _, id := range auctionIDs {
		wanted[id] = struct{}{}
	}

	out := make([]auction.PlayerEntry, 0)
	for _, e := range r.entries {
		if _, ok := wanted[e.AuctionID]; ok {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AuctionID != out[j].AuctionID {
			return out[i].AuctionID < out[j].AuctionID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *AuctionRepository) UpdateEntryPoints(_ context.Context, playerID, auctionID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey(playerID, auctionID)
	e, ok := r.entries[key]
	if !ok {
		e = auction.PlayerEntry{PlayerID: playerID, AuctionID: auctionID}
	}
	e.TotalPoints = points
	r.entries[key] = e
	return nil
}

func (r *AuctionRepository) snapshotAuctions() map[string]auction.Auction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]auction.Auction, len(r.auctions))
	for id, a := range r.auctions {
		out[id] = a
	}
	return out
}

func entryKey(playerID, auctionID string) string {
	return playerID + "::" + auctionID
}
