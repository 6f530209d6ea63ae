package memory

import (
	"context"
	"testing"
)

func newSeededAggregateRepo() (*AggregateRepository, *StatsRepository) {
	statsRepo := NewStatsRepository(SeedStats())
	auctionRepo := NewAuctionRepository(SeedAuctions(), SeedPicks(), SeedPlayerEntries())
	return NewAggregateRepository(
		NewMovieRepository(SeedMovies()),
		statsRepo,
		NewPlayerRepository(SeedPlayers()),
		auctionRepo,
	), statsRepo
}

func TestAggregateRefreshBuildsRowsFromPicks(t *testing.T) {
	repo, _ := newSeededAggregateRepo()
	ctx := context.Background()

	if err := repo.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	rows, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(rows) != len(SeedPicks()) {
		t.Fatalf("expected %d rows, got %d", len(SeedPicks()), len(rows))
	}

	var sinners bool
	for _, row := range rows {
		if row.MovieTitle != "Sinners" {
			continue
		}
		sinners = true
		if row.PlayerName != "Avery Collins" {
			t.Fatalf("unexpected player name %q", row.PlayerName)
		}
		if row.CriticScore == nil || *row.CriticScore != 84 {
			t.Fatalf("expected critic score 84, got %v", row.CriticScore)
		}
		if row.DomesticGross != 278_000_000 {
			t.Fatalf("unexpected domestic gross %d", row.DomesticGross)
		}
	}
	if !sinners {
		t.Fatal("expected a row for Sinners")
	}
}

func TestAggregateRefreshPicksUpStatsChanges(t *testing.T) {
	repo, statsRepo := newSeededAggregateRepo()
	ctx := context.Background()

	if err := repo.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	updated, found, err := statsRepo.GetByMovieID(ctx, "movie-sinners")
	if err != nil || !found {
		t.Fatalf("get stats: found=%v err=%v", found, err)
	}
	updated.DomesticGross = 300_000_000
	if err := statsRepo.Upsert(ctx, updated); err != nil {
		t.Fatalf("upsert stats: %v", err)
	}

	if err := repo.Refresh(ctx); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	rows, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	for _, row := range rows {
		if row.MovieID == "movie-sinners" && row.DomesticGross != 300_000_000 {
			t.Fatalf("expected refreshed gross, got %d", row.DomesticGross)
		}
	}
}

func TestAggregateListByAuctionIDsFilters(t *testing.T) {
	repo, _ := newSeededAggregateRepo()
	ctx := context.Background()

	if err := repo.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	rows, err := repo.ListByAuctionIDs(ctx, []string{AuctionIDFall2025})
	if err != nil {
		t.Fatalf("list by auction: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows for the fall auction, got %d", len(rows))
	}
	for _, row := range rows {
		if row.AuctionID != AuctionIDFall2025 {
			t.Fatalf("row leaked from auction %s", row.AuctionID)
		}
	}
}
