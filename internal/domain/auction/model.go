package auction

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusAnnounced Status = "announced"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var AllStatuses = map[Status]struct{}{
	StatusAnnounced: {},
	StatusActive:    {},
	StatusCompleted: {},
}

// Auction is one draft cycle. Several cycles may share a year; yearly
// leaderboards aggregate across all of them.
type Auction struct {
	ID              string
	Name            string
	Year            int
	Cycle           int
	BudgetPerPlayer int64
	Status          Status
}

func (a Auction) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("auction id is required")
	}
	if a.Year < 1900 {
		return fmt.Errorf("invalid auction year: %d", a.Year)
	}
	if a.Cycle < 1 {
		return fmt.Errorf("auction cycle must be positive")
	}
	if a.BudgetPerPlayer <= 0 {
		return fmt.Errorf("auction budget must be greater than zero")
	}
	if _, ok := AllStatuses[a.Status]; !ok {
		return fmt.Errorf("invalid auction status: %s", a.Status)
	}
	return nil
}

// Pick is a player's winning bid on a movie. Immutable once created.
type Pick struct {
	ID        string
	PlayerID  string
	MovieID   string
	AuctionID string
	Amount    int64
	PickedAt  time.Time
}

func (p Pick) Validate() error {
	if p.PlayerID == "" || p.MovieID == "" || p.AuctionID == "" {
		return fmt.Errorf("pick player, movie and auction ids are required")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("pick amount must be greater than zero")
	}
	return nil
}

// PlayerEntry caches per player per auction budget and points totals. Points
// are refreshed by full recomputation after each aggregate rebuild.
type PlayerEntry struct {
	PlayerID        string
	AuctionID       string
	RemainingBudget int64
	TotalSpent      int64
	TotalPoints     int
}
