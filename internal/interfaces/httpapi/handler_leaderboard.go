package httpapi

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/moviedraft/movie-auction/internal/usecase"
)

// The leaderboard payload mirrors the shape the dashboard UI consumes:
// a bare array of ranked players, each with per-movie criterion cells
// already rendered as display strings.
type leaderboardEntryDTO struct {
	Rank   int                   `json:"rank"`
	Name   string                `json:"name"`
	Spent  int64                 `json:"spent"`
	Left   int64                 `json:"left"`
	Points int                   `json:"points"`
	Movies []leaderboardMovieDTO `json:"movies"`
}

type leaderboardMovieDTO struct {
	Title       string       `json:"title"`
	Price       int64        `json:"price"`
	PosterTheme string       `json:"posterTheme"`
	BoxOffice   criterionDTO `json:"boxOffice"`
	Oscar       criterionDTO `json:"oscar"`
	Metacritic  criterionDTO `json:"metacritic"`
	Points      *int         `json:"points"`
}

type criterionDTO struct {
	Status string `json:"status"`
	Value  string `json:"value"`
}

func (h *Handler) GetAuctionLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAuctionLeaderboard")
	defer span.End()

	auctionID := r.PathValue("auctionID")
	entries, err := h.leaderboardService.ByAuction(ctx, auctionID)
	if err != nil {
		h.logger.WarnContext(ctx, "auction leaderboard failed", "auction_id", auctionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeBare(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) GetLatestLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLatestLeaderboard")
	defer span.End()

	entries, err := h.leaderboardService.Latest(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "latest leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeBare(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) GetYearLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetYearLeaderboard")
	defer span.End()

	rawYear := r.PathValue("year")
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid year %q", usecase.ErrInvalidInput, rawYear))
		return
	}

	entries, err := h.leaderboardService.ByYear(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "year leaderboard failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeBare(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func leaderboardToDTO(entries []usecase.LeaderboardEntry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		movies := make([]leaderboardMovieDTO, 0, len(entry.Movies))
		for _, m := range entry.Movies {
			movies = append(movies, leaderboardMovieDTO{
				Title:       m.Title,
				Price:       m.Price,
				PosterTheme: posterTheme(m.Genre),
				BoxOffice: criterionDTO{
					Status: string(m.Score.BoxOffice),
					Value:  boxOfficeValue(m.DomesticGross),
				},
				Oscar: criterionDTO{
					Status: string(m.Score.Award),
					Value:  oscarValue(m.OscarNominations),
				},
				Metacritic: criterionDTO{
					Status: string(m.Score.Critic),
					Value:  criticValue(m.CriticScore),
				},
				Points: m.Score.VisiblePoints(),
			})
		}

		out = append(out, leaderboardEntryDTO{
			Rank:   entry.Rank,
			Name:   entry.Name,
			Spent:  entry.Spent,
			Left:   entry.Left,
			Points: entry.Points,
			Movies: movies,
		})
	}
	return out
}

func posterTheme(genre string) string {
	theme := strings.ToLower(strings.TrimSpace(genre))
	if theme == "" {
		return "drama"
	}
	return theme
}

func boxOfficeValue(domesticGross int64) string {
	if domesticGross <= 0 {
		return "TBD"
	}
	millions := float64(domesticGross) / 1_000_000
	return fmt.Sprintf("$%dM", int64(math.Round(millions)))
}

func oscarValue(nominations *int) string {
	switch {
	case nominations == nil:
		return "TBD"
	case *nominations > 0:
		return "Nom"
	default:
		return "None"
	}
}

func criticValue(score *int) string {
	if score == nil {
		return "TBD"
	}
	return strconv.Itoa(*score)
}
