package memory

import (
	"time"

	"github.com/moviedraft/movie-auction/internal/domain/auction"
	"github.com/moviedraft/movie-auction/internal/domain/movie"
	"github.com/moviedraft/movie-auction/internal/domain/player"
	"github.com/moviedraft/movie-auction/internal/domain/stats"
)

const (
	AuctionIDSpring2025 = "auction-2025-1"
	AuctionIDFall2025   = "auction-2025-2"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "player-avery", FirstName: "Avery", LastName: "Collins"},
		{ID: "player-blake", FirstName: "Blake", LastName: "Navarro"},
		{ID: "player-casey", FirstName: "Casey", LastName: "Whitfield"},
		{ID: "player-drew", FirstName: "Drew", LastName: "Okafor"},
	}
}

func SeedMovies() []movie.Movie {
	return []movie.Movie{
		{
			ID:                "movie-sinners",
			Title:             "Sinners",
			Genre:             "Horror",
			ActualReleaseDate: datePtr(2025, 4, 18),
			IMDBURL:           "https://www.imdb.com/title/tt31193180/",
		},
		{
			ID:                "movie-obaa",
			Title:             "One Battle After Another",
			Genre:             "Thriller",
			ActualReleaseDate: datePtr(2025, 9, 26),
		},
		{
			ID:                "movie-hamnet",
			Title:             "Hamnet",
			Genre:             "Drama",
			ActualReleaseDate: datePtr(2025, 11, 27),
		},
		{
			ID:                     "movie-avatar-3",
			Title:                  "Avatar: Fire and Ash",
			Genre:                  "Sci-Fi",
			AnticipatedReleaseDate: datePtr(2025, 12, 19),
		},
		{
			ID:                     "movie-dune-3",
			Title:                  "Dune: Part Three",
			Genre:                  "Sci-Fi",
			AnticipatedReleaseDate: datePtr(2026, 12, 18),
		},
		{
			ID:                "movie-weapons",
			Title:             "Weapons",
			Genre:             "Horror",
			ActualReleaseDate: datePtr(2025, 8, 8),
		},
	}
}

func SeedStats() []stats.MovieStats {
	return []stats.MovieStats{
		{
			MovieID:            "movie-sinners",
			CriticScore:        intPtr(84),
			DomesticGross:      278_000_000,
			InternationalGross: 87_000_000,
			UpdatedAt:          time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			MovieID:            "movie-weapons",
			CriticScore:        intPtr(80),
			DomesticGross:      151_000_000,
			InternationalGross: 112_000_000,
			UpdatedAt:          time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedAuctions() []auction.Auction {
	return []auction.Auction{
		{
			ID:              AuctionIDSpring2025,
			Name:            "Spring 2025",
			Year:            2025,
			Cycle:           1,
			BudgetPerPlayer: 100,
			Status:          auction.StatusCompleted,
		},
		{
			ID:              AuctionIDFall2025,
			Name:            "Fall 2025",
			Year:            2025,
			Cycle:           2,
			BudgetPerPlayer: 100,
			Status:          auction.StatusActive,
		},
	}
}

func SeedPicks() []auction.Pick {
	return []auction.Pick{
		{ID: "pick-001", PlayerID: "player-avery", MovieID: "movie-sinners", AuctionID: AuctionIDSpring2025, Amount: 42, PickedAt: time.Date(2025, 3, 2, 19, 0, 0, 0, time.UTC)},
		{ID: "pick-002", PlayerID: "player-blake", MovieID: "movie-weapons", AuctionID: AuctionIDSpring2025, Amount: 27, PickedAt: time.Date(2025, 3, 2, 19, 5, 0, 0, time.UTC)},
		{ID: "pick-003", PlayerID: "player-casey", MovieID: "movie-avatar-3", AuctionID: AuctionIDSpring2025, Amount: 55, PickedAt: time.Date(2025, 3, 2, 19, 10, 0, 0, time.UTC)},
		{ID: "pick-004", PlayerID: "player-avery", MovieID: "movie-obaa", AuctionID: AuctionIDFall2025, Amount: 38, PickedAt: time.Date(2025, 8, 24, 18, 0, 0, 0, time.UTC)},
		{ID: "pick-005", PlayerID: "player-drew", MovieID: "movie-hamnet", AuctionID: AuctionIDFall2025, Amount: 31, PickedAt: time.Date(2025, 8, 24, 18, 5, 0, 0, time.UTC)},
		{ID: "pick-006", PlayerID: "player-blake", MovieID: "movie-dune-3", AuctionID: AuctionIDFall2025, Amount: 45, PickedAt: time.Date(2025, 8, 24, 18, 10, 0, 0, time.UTC)},
	}
}

func SeedPlayerEntries() []auction.PlayerEntry {
	return []auction.PlayerEntry{
		{PlayerID: "player-avery", AuctionID: AuctionIDSpring2025, RemainingBudget: 58, TotalSpent: 42},
		{PlayerID: "player-blake", AuctionID: AuctionIDSpring2025, RemainingBudget: 73, TotalSpent: 27},
		{PlayerID: "player-casey", AuctionID: AuctionIDSpring2025, RemainingBudget: 45, TotalSpent: 55},
		{PlayerID: "player-avery", AuctionID: AuctionIDFall2025, RemainingBudget: 62, TotalSpent: 38},
		{PlayerID: "player-drew", AuctionID: AuctionIDFall2025, RemainingBudget: 69, TotalSpent: 31},
		{PlayerID: "player-blake", AuctionID: AuctionIDFall2025, RemainingBudget: 55, TotalSpent: 45},
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func intPtr(v int) *int {
	return &v
}
