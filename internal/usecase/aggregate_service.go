package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/moviedraft/movie-auction/internal/domain/aggregate"
	"github.com/moviedraft/movie-auction/internal/domain/auction"
	"github.com/moviedraft/movie-auction/internal/platform/cache"
	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

const defaultAggregateWorkers = 8

// AggregateService rebuilds the read projection and refreshes the cached
// per-player points totals from it.
type AggregateService struct {
	aggregateRepo aggregate.Repository
	auctionRepo   auction.Repository
	cacheStore    *cache.Store
	scoreCfg      ScoreConfig
	workers       int
	logger        *logging.Logger
}

func NewAggregateService(
	aggregateRepo aggregate.Repository,
	auctionRepo auction.Repository,
	cacheStore *cache.Store,
	scoreCfg ScoreConfig,
	workers int,
	logger *logging.Logger,
) *AggregateService {
	if workers <= 0 {
		workers = defaultAggregateWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AggregateService{
		aggregateRepo: aggregateRepo,
		auctionRepo:   auctionRepo,
		cacheStore:    cacheStore,
		scoreCfg:      normalizeScoreConfig(scoreCfg),
		workers:       workers,
		logger:        logger,
	}
}

// Refresh rebuilds the projection wholesale, then recomputes every player's
// cached points total from the fresh rows. Idempotent.
func (s *AggregateService) Refresh(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "aggregate.refresh")
	defer span.End()

	if err := s.aggregateRepo.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh projection: %w", err)
	}
	if err := s.recomputePlayerPoints(ctx); err != nil {
		return fmt.Errorf("recompute player points: %w", err)
	}

	if s.cacheStore != nil {
		s.cacheStore.DeletePrefix(ctx, leaderboardCachePrefix)
	}
	return nil
}

type entryKey struct {
	playerID  string
	auctionID string
}

func (s *AggregateService) recomputePlayerPoints(ctx context.Context) error {
	rows, err := s.aggregateRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list aggregate rows: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create scoring pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	totals := make(map[entryKey]int)

	var wg sync.WaitGroup
	for _, row := range rows {
		row := row
		wg.Add(1)
		task := func() {
			defer wg.Done()
			score := ScoreRow(row, s.scoreCfg)
			mu.Lock()
			totals[entryKey{playerID: row.PlayerID, auctionID: row.AuctionID}] += score.Points
			mu.Unlock()
		}
		if submitErr := pool.Submit(task); submitErr != nil {
			// Pool rejected the task; score on the caller instead.
			task()
		}
	}
	wg.Wait()

	for key, points := range totals {
		if err := s.auctionRepo.UpdateEntryPoints(ctx, key.playerID, key.auctionID, points); err != nil {
			return fmt.Errorf("update entry points for player %s auction %s: %w", key.playerID, key.auctionID, err)
		}
	}
	return nil
}
