package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/moviedraft/movie-auction/internal/domain/aggregate"
	"github.com/moviedraft/movie-auction/internal/platform/cache"
	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

func TestAggregateRefreshRecomputesPlayerPoints(t *testing.T) {
	aggRepo := &stubAggregateRepo{
		rows: []aggregate.Row{
			{PlayerID: "p1", AuctionID: "a1", CriticScore: intPtr(90), DomesticGross: 150_000_000, OscarNominations: intPtr(3)},
			{PlayerID: "p1", AuctionID: "a1", CriticScore: intPtr(70), DomesticGross: 10, OscarNominations: intPtr(1)},
			{PlayerID: "p2", AuctionID: "a1", CriticScore: intPtr(88), DomesticGross: 0, OscarNominations: nil},
		},
	}
	auctionRepo := &stubAuctionRepo{}

	svc := NewAggregateService(aggRepo, auctionRepo, nil, DefaultScoreConfig(), 2, logging.NewNop())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh(): %v", err)
	}

	if aggRepo.refreshes != 1 {
		t.Fatalf("projection refreshes = %d, want 1", aggRepo.refreshes)
	}
	if got := auctionRepo.pointsWrites["p1/a1"]; got != 4 {
		t.Fatalf("p1 points = %d, want 4", got)
	}
	if got := auctionRepo.pointsWrites["p2/a1"]; got != 1 {
		t.Fatalf("p2 points = %d, want 1", got)
	}
}

func TestAggregateRefreshPropagatesProjectionError(t *testing.T) {
	aggRepo := &stubAggregateRepo{refreshErr: errors.New("view locked")}
	svc := NewAggregateService(aggRepo, &stubAuctionRepo{}, nil, DefaultScoreConfig(), 2, logging.NewNop())

	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatalf("Refresh() swallowed projection error")
	}
}

func TestAggregateRefreshInvalidatesLeaderboardCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewStore(0)
	store.Set(ctx, leaderboardCachePrefix+"auction:a1", []LeaderboardEntry{{Name: "stale"}})
	store.Set(ctx, "movies:all", 1)

	svc := NewAggregateService(&stubAggregateRepo{}, &stubAuctionRepo{}, store, DefaultScoreConfig(), 2, logging.NewNop())
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh(): %v", err)
	}

	if _, ok := store.Get(ctx, leaderboardCachePrefix+"auction:a1"); ok {
		t.Fatalf("leaderboard cache not invalidated")
	}
	if _, ok := store.Get(ctx, "movies:all"); !ok {
		t.Fatalf("unrelated cache entry dropped")
	}
}
