package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/moviedraft/movie-auction/internal/usecase"
)

// DBPinger reports storage reachability for the health endpoint. Nil when
// the memory driver is active.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	catalogService     *usecase.CatalogService
	leaderboardService *usecase.LeaderboardService
	batchService       *usecase.BatchService
	pinger             DBPinger
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	leaderboardService *usecase.LeaderboardService,
	batchService *usecase.BatchService,
	pinger DBPinger,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		catalogService:     catalogService,
		leaderboardService: leaderboardService,
		batchService:       batchService,
		pinger:             pinger,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	if h.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.pinger.PingContext(pingCtx); err != nil {
			h.logger.ErrorContext(ctx, "health check db ping failed", "error", err)
			writeJSON(ctx, w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type playerDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.catalogService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerDTO{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Name:      p.Name(),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type movieStatsDTO struct {
	CriticScore        *int      `json:"criticScore"`
	DomesticGross      int64     `json:"domesticGross"`
	InternationalGross int64     `json:"internationalGross"`
	OscarNominations   *int      `json:"oscarNominations"`
	OscarWins          int       `json:"oscarWins"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type movieDTO struct {
	ID                     string         `json:"id"`
	Title                  string         `json:"title"`
	Genre                  string         `json:"genre"`
	ActualReleaseDate      *time.Time     `json:"actualReleaseDate,omitempty"`
	AnticipatedReleaseDate *time.Time     `json:"anticipatedReleaseDate,omitempty"`
	IMDBURL                string         `json:"imdbUrl,omitempty"`
	LetterboxdURL          string         `json:"letterboxdUrl,omitempty"`
	Stats                  *movieStatsDTO `json:"stats,omitempty"`
}

func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMovies")
	defer span.End()

	movies, err := h.catalogService.ListMovies(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list movies failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]movieDTO, 0, len(movies))
	for _, m := range movies {
		dto := movieDTO{
			ID:                     m.Movie.ID,
			Title:                  m.Movie.Title,
			Genre:                  m.Movie.Genre,
			ActualReleaseDate:      m.Movie.ActualReleaseDate,
			AnticipatedReleaseDate: m.Movie.AnticipatedReleaseDate,
			IMDBURL:                m.Movie.IMDBURL,
			LetterboxdURL:          m.Movie.LetterboxdURL,
		}
		if m.Stats != nil {
			dto.Stats = &movieStatsDTO{
				CriticScore:        m.Stats.CriticScore,
				DomesticGross:      m.Stats.DomesticGross,
				InternationalGross: m.Stats.InternationalGross,
				OscarNominations:   m.Stats.OscarNominations,
				OscarWins:          m.Stats.OscarWins,
				UpdatedAt:          m.Stats.UpdatedAt,
			}
		}
		items = append(items, dto)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
