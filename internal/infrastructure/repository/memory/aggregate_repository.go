package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/moviedraft/movie-auction/internal/domain/aggregate"
	"github.com/moviedraft/movie-auction/internal/domain/movie"
	"github.com/moviedraft/movie-auction/internal/domain/player"
	"github.com/moviedraft/movie-auction/internal/domain/stats"
)

// AggregateRepository is the in-memory stand-in for the pick/stats
// projection. Refresh rebuilds the row set aside and swaps it in, so
// readers never observe a half-built projection.
type AggregateRepository struct {
	movieRepo   movie.Repository
	statsRepo   stats.Repository
	playerRepo  player.Repository
	auctionRepo *AuctionRepository

	mu   sync.RWMutex
	rows []aggregate.Row
}

func NewAggregateRepository(
	movieRepo movie.Repository,
	statsRepo stats.Repository,
	playerRepo player.Repository,
	auctionRepo *AuctionRepository,
) *AggregateRepository {
	return &AggregateRepository{
		movieRepo:   movieRepo,
		statsRepo:   statsRepo,
		playerRepo:  playerRepo,
		auctionRepo: auctionRepo,
	}
}

func (r *AggregateRepository) Refresh(ctx context.Context) error {
	movies, err := r.movieRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("rebuild projection: list movies: %w", err)
	}
	moviesByID := make(map[string]movie.Movie, len(movies))
	for _, m := range movies {
		moviesByID[m.ID] = m
	}

	players, err := r.playerRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("rebuild projection: list players: %w", err)
	}
	playersByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	auctionsByID := r.auctionRepo.snapshotAuctions()
	auctionIDs := make([]string, 0, len(auctionsByID))
	for id := range auctionsByID {
		auctionIDs = append(auctionIDs, id)
	}

	picks, err := r.auctionRepo.ListPicksByAuctionIDs(ctx, auctionIDs)
	if err != nil {
		return fmt.Errorf("rebuild projection: list picks: %w", err)
	}

	rows := make([]aggregate.Row, 0, len(picks))
	for _, pick := range picks {
		m, ok := moviesByID[pick.MovieID]
		if !ok {
			continue
		}
		p, ok := playersByID[pick.PlayerID]
		if !ok {
			continue
		}
		a, ok := auctionsByID[pick.AuctionID]
		if !ok {
			continue
		}

		row := aggregate.Row{
			PlayerID:     p.ID,
			PlayerName:   p.Name(),
			AuctionID:    a.ID,
			AuctionYear:  a.Year,
			AuctionCycle: a.Cycle,
			MovieID:      m.ID,
			MovieTitle:   m.Title,
			MovieGenre:   m.Genre,
			Amount:       pick.Amount,
		}

		st, found, err := r.statsRepo.GetByMovieID(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("rebuild projection: get stats for %s: %w", m.ID, err)
		}
		if found {
			row.CriticScore = st.CriticScore
			row.DomesticGross = st.DomesticGross
			row.InternationalGross = st.InternationalGross
			row.OscarNominations = st.OscarNominations
			row.OscarWins = st.OscarWins
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AuctionYear != rows[j].AuctionYear {
			return rows[i].AuctionYear < rows[j].AuctionYear
		}
		if rows[i].AuctionCycle != rows[j].AuctionCycle {
			return rows[i].AuctionCycle < rows[j].AuctionCycle
		}
		return rows[i].PlayerName < rows[j].PlayerName
	})

	r.mu.Lock()
	r.rows = rows
	r.mu.Unlock()
	return nil
}

func (r *AggregateRepository) ListAll(_ context.Context) ([]aggregate.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]aggregate.Row, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *AggregateRepository) ListByAuctionIDs(_ context.Context, auctionIDs []string) ([]aggregate.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(auctionIDs))
	for _, id := range auctionIDs {
		wanted[id] = struct{}{}
	}

	out := make([]aggregate.Row, 0)
	for _, row := range r.rows {
		if _, ok := wanted[row.AuctionID]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}
