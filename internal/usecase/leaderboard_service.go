package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/moviedraft/movie-auction/internal/domain/aggregate"
	"github.com/moviedraft/movie-auction/internal/domain/auction"
	"github.com/moviedraft/movie-auction/internal/platform/cache"
	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

const leaderboardCachePrefix = "leaderboard:"

type LeaderboardMovie struct {
	Title            string
	Genre            string
	Price            int64
	CriticScore      *int
	DomesticGross    int64
	OscarNominations *int
	OscarWins        int
	Score            MovieScore
}

type LeaderboardEntry struct {
	Rank     int
	PlayerID string
	Name     string
	Spent    int64
	Left     int64
	Points   int
	Movies   []LeaderboardMovie
}

// LeaderboardService serves ranked players with their scored picks, reading
// only the aggregate projection.
type LeaderboardService struct {
	aggregateRepo aggregate.Repository
	auctionRepo   auction.Repository
	cacheStore    *cache.Store
	scoreCfg      ScoreConfig
	logger        *logging.Logger
}

func NewLeaderboardService(
	aggregateRepo aggregate.Repository,
	auctionRepo auction.Repository,
	cacheStore *cache.Store,
	scoreCfg ScoreConfig,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	if scoreCfg.AwardThreshold <= 0 {
		scoreCfg = DefaultScoreConfig()
	}

	return &LeaderboardService{
		aggregateRepo: aggregateRepo,
		auctionRepo:   auctionRepo,
		cacheStore:    cacheStore,
		scoreCfg:      scoreCfg,
		logger:        logger,
	}
}

func (s *LeaderboardService) ByAuction(ctx context.Context, auctionID string) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "leaderboard.by_auction")
	defer span.End()

	if auctionID == "" {
		return nil, fmt.Errorf("%w: auction id is required", ErrInvalidInput)
	}

	_, found, err := s.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("load auction: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: auction %s", ErrNotFound, auctionID)
	}

	return s.cached(ctx, leaderboardCachePrefix+"auction:"+auctionID, func(ctx context.Context) ([]LeaderboardEntry, error) {
		return s.build(ctx, []string{auctionID}, s.scoreCfg)
	})
}

func (s *LeaderboardService) Latest(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "leaderboard.latest")
	defer span.End()

	latest, found, err := s.auctionRepo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest auction: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: no auctions exist", ErrNotFound)
	}

	return s.cached(ctx, leaderboardCachePrefix+"auction:"+latest.ID, func(ctx context.Context) ([]LeaderboardEntry, error) {
		return s.build(ctx, []string{latest.ID}, s.scoreCfg)
	})
}

// ByYear aggregates every cycle of a year under the stricter award
// threshold the yearly view has always used.
func (s *LeaderboardService) ByYear(ctx context.Context, year int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "leaderboard.by_year")
	defer span.End()

	auctions, err := s.auctionRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list auctions for year: %w", err)
	}
	if len(auctions) == 0 {
		return nil, fmt.Errorf("%w: no auctions in year %d", ErrNotFound, year)
	}

	ids := make([]string, 0, len(auctions))
	for _, a := range auctions {
		ids = append(ids, a.ID)
	}

	return s.cached(ctx, leaderboardCachePrefix+"year:"+strconv.Itoa(year), func(ctx context.Context) ([]LeaderboardEntry, error) {
		return s.build(ctx, ids, ScoreConfig{AwardThreshold: YearlyAwardThreshold})
	})
}

func (s *LeaderboardService) cached(ctx context.Context, key string, load func(context.Context) ([]LeaderboardEntry, error)) ([]LeaderboardEntry, error) {
	if s.cacheStore == nil {
		return load(ctx)
	}

	value, err := s.cacheStore.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return nil, err
	}
	entries, ok := value.([]LeaderboardEntry)
	if !ok {
		return load(ctx)
	}
	return entries, nil
}

func (s *LeaderboardService) build(ctx context.Context, auctionIDs []string, scoreCfg ScoreConfig) ([]LeaderboardEntry, error) {
	rows, err := s.aggregateRepo.ListByAuctionIDs(ctx, auctionIDs)
	if err != nil {
		return nil, fmt.Errorf("list aggregate rows: %w", err)
	}

	playerEntries, err := s.auctionRepo.ListPlayerEntries(ctx, auctionIDs)
	if err != nil {
		return nil, fmt.Errorf("list player entries: %w", err)
	}
	budgets := make(map[string]struct {
		spent int64
		left  int64
	}, len(playerEntries))
	for _, e := range playerEntries {
		b := budgets[e.PlayerID]
		b.spent += e.TotalSpent
		b.left += e.RemainingBudget
		budgets[e.PlayerID] = b
	}

	// Group in row order so ties keep their insertion order through the sort.
	var order []string
	grouped := make(map[string]*LeaderboardEntry)
	for _, row := range rows {
		entry, ok := grouped[row.PlayerID]
		if !ok {
			entry = &LeaderboardEntry{PlayerID: row.PlayerID, Name: row.PlayerName}
			if b, ok := budgets[row.PlayerID]; ok {
				entry.Spent = b.spent
				entry.Left = b.left
			}
			grouped[row.PlayerID] = entry
			order = append(order, row.PlayerID)
		}
		score := ScoreRow(row, scoreCfg)
		entry.Points += score.Points
		entry.Movies = append(entry.Movies, LeaderboardMovie{
			Title:            row.MovieTitle,
			Genre:            row.MovieGenre,
			Price:            row.Amount,
			CriticScore:      row.CriticScore,
			DomesticGross:    row.DomesticGross,
			OscarNominations: row.OscarNominations,
			OscarWins:        row.OscarWins,
			Score:            score,
		})
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, playerID := range order {
		entry := grouped[playerID]
		if entry.Spent == 0 && len(entry.Movies) > 0 {
			for _, m := range entry.Movies {
				entry.Spent += m.Price
			}
		}
		entries = append(entries, *entry)
	}

	// Rank strictly by points; ties keep insertion order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}
