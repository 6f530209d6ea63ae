package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/moviedraft/movie-auction/internal/domain/awards"
	"github.com/moviedraft/movie-auction/internal/domain/movie"
	"github.com/moviedraft/movie-auction/internal/domain/stats"
	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

type ReconcileStatus string

const (
	ReconcileSuccess ReconcileStatus = "success"
	ReconcilePartial ReconcileStatus = "partial"
	ReconcileFailed  ReconcileStatus = "failed"
	ReconcileSkipped ReconcileStatus = "skipped"
)

// FieldChange records one observed stat transition for reporting. Purely
// observational; it never feeds back into the merge.
type FieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

type ReconcileOutcome struct {
	MovieID string
	Title   string
	Status  ReconcileStatus
	Errors  []string
	Updates stats.MovieStats
	Changes []FieldChange
}

// Wrote reports whether the outcome left a fresh row in the stats store.
// Skipped counts: the pending reset for an unreleased movie is a write the
// read projection has to pick up.
func (o ReconcileOutcome) Wrote() bool {
	return o.Status != ReconcileFailed
}

// MovieLinks are external reference URLs fetched lazily for a movie and kept
// once present.
type MovieLinks struct {
	IMDBURL       string
	LetterboxdURL string
}

type MovieLinksProvider interface {
	FetchLinks(ctx context.Context, title string, year int) (MovieLinks, error)
}

// ReconcilerService produces the next stats row for one movie by fetching
// the three outcome signals and merging them against what is stored, without
// ever regressing a known value to unknown.
type ReconcilerService struct {
	movieRepo movie.Repository
	statsRepo stats.Repository
	critic    CriticScoreProvider
	boxOffice BoxOfficeProvider
	noms      NominationsProvider
	links     MovieLinksProvider
	logger    *logging.Logger
	now       func() time.Time
}

func NewReconcilerService(
	movieRepo movie.Repository,
	statsRepo stats.Repository,
	critic CriticScoreProvider,
	boxOffice BoxOfficeProvider,
	noms NominationsProvider,
	links MovieLinksProvider,
	logger *logging.Logger,
) *ReconcilerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReconcilerService{
		movieRepo: movieRepo,
		statsRepo: statsRepo,
		critic:    critic,
		boxOffice: boxOffice,
		noms:      noms,
		links:     links,
		logger:    logger,
		now:       time.Now,
	}
}

// Reconcile runs the full pipeline for one movie. Failures are carried in
// the outcome rather than returned: the batch must keep going regardless.
func (s *ReconcilerService) Reconcile(ctx context.Context, m movie.Movie) ReconcileOutcome {
	ctx, span := startUsecaseSpan(ctx, "reconciler.reconcile")
	defer span.End()

	outcome := ReconcileOutcome{MovieID: m.ID, Title: m.Title}

	s.enrichLinks(ctx, &m)

	prior, hadPrior, err := s.statsRepo.GetByMovieID(ctx, m.ID)
	if err != nil {
		outcome.Status = ReconcileFailed
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("load stored stats: %v", err))
		return outcome
	}

	now := s.now()
	year, hasYear := m.ReleaseYear()

	// An unreleased movie cannot have real stats; anything stored is stale.
	// This overwrite is intentional, unlike the merge below.
	if hasYear && !m.Released(now) {
		reset := stats.PendingReset(m.ID, prior.OscarWins)
		reset.UpdatedAt = now
		if err := s.statsRepo.Upsert(ctx, reset); err != nil {
			outcome.Status = ReconcileFailed
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("store pending reset: %v", err))
			return outcome
		}
		outcome.Status = ReconcileSkipped
		outcome.Updates = reset
		return outcome
	}

	fetched := s.fetchAll(ctx, m, year, hasYear, now)

	merged := s.merge(m, prior, hadPrior, fetched, &outcome)
	merged.UpdatedAt = now

	if hadPrior {
		outcome.Changes = detectChanges(prior, merged)
	}

	if err := s.statsRepo.Upsert(ctx, merged); err != nil {
		outcome.Status = ReconcileFailed
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("store stats: %v", err))
		return outcome
	}

	outcome.Updates = merged
	if len(outcome.Errors) > 0 {
		outcome.Status = ReconcilePartial
	} else {
		outcome.Status = ReconcileSuccess
	}
	return outcome
}

type adapterResults struct {
	critic    CriticScoreResult
	criticErr error

	boxOffice    BoxOfficeResult
	boxOfficeErr error

	noms          NominationsResult
	nomsErr       error
	nomsAttempted bool
	nomsOverride  bool
	nomsPending   bool
}

// fetchAll fans out the adapter calls concurrently and joins before the
// merge. One adapter failing never cancels the others.
func (s *ReconcilerService) fetchAll(ctx context.Context, m movie.Movie, year int, hasYear bool, now time.Time) adapterResults {
	var res adapterResults

	// Nomination short-circuits are decided up front so the fan-out only
	// carries real network work.
	switch {
	case !hasYear:
		res.nomsPending = true
	default:
		if override, ok := awards.Lookup(m.Title, year); ok {
			res.noms = NominationsResult{Count: override.Nominations, Found: true}
			res.nomsOverride = true
		} else if ceremonyYear := year + 1; ceremonyYear > now.Year() {
			// Nominations for a release year are announced in the following
			// year's ceremony; until then the count is undetermined.
			res.nomsPending = true
		} else {
			res.nomsAttempted = true
		}
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		res.critic, res.criticErr = s.critic.FetchCriticScore(ctx, m.Title)
	})
	wg.Go(func() {
		res.boxOffice, res.boxOfficeErr = s.boxOffice.FetchBoxOffice(ctx, m.Title, year)
	})
	if res.nomsAttempted {
		wg.Go(func() {
			res.noms, res.nomsErr = s.noms.FetchNominations(ctx, m.Title, year)
		})
	}
	wg.Wait()

	return res
}

// merge applies the never-regress rule per field: a fetched value (confirmed
// absence included) wins; an adapter error keeps the stored value, or the
// neutral default when nothing was stored.
func (s *ReconcilerService) merge(m movie.Movie, prior stats.MovieStats, hadPrior bool, fetched adapterResults, outcome *ReconcileOutcome) stats.MovieStats {
	merged := stats.MovieStats{MovieID: m.ID, OscarWins: prior.OscarWins}

	switch {
	case fetched.criticErr != nil:
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("critic score: %v", fetched.criticErr))
		if hadPrior {
			merged.CriticScore = prior.CriticScore
		}
	case fetched.critic.Found:
		score := fetched.critic.Score
		merged.CriticScore = &score
	}

	switch {
	case fetched.boxOfficeErr != nil:
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("box office: %v", fetched.boxOfficeErr))
		if hadPrior {
			merged.DomesticGross = prior.DomesticGross
			merged.InternationalGross = prior.InternationalGross
		}
	case fetched.boxOffice.Found:
		merged.DomesticGross = fetched.boxOffice.Domestic
		merged.InternationalGross = fetched.boxOffice.International
	}

	switch {
	case fetched.nomsPending:
		merged.OscarNominations = nil
	case fetched.nomsOverride:
		count := fetched.noms.Count
		merged.OscarNominations = &count
	case fetched.nomsErr != nil:
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("award nominations: %v", fetched.nomsErr))
		if hadPrior {
			merged.OscarNominations = prior.OscarNominations
		}
	case fetched.nomsAttempted:
		count := 0
		if fetched.noms.Found {
			count = fetched.noms.Count
		}
		merged.OscarNominations = &count
	}

	return merged
}

func (s *ReconcilerService) enrichLinks(ctx context.Context, m *movie.Movie) {
	if s.links == nil || (m.IMDBURL != "" && m.LetterboxdURL != "") {
		return
	}

	year, _ := m.ReleaseYear()
	links, err := s.links.FetchLinks(ctx, m.Title, year)
	if err != nil {
		s.logger.WarnContext(ctx, "movie link enrichment failed", "movie_title", m.Title, "error", err)
		return
	}

	if m.IMDBURL == "" {
		m.IMDBURL = links.IMDBURL
	}
	if m.LetterboxdURL == "" {
		m.LetterboxdURL = links.LetterboxdURL
	}
	if err := s.movieRepo.UpdateLinks(ctx, m.ID, m.IMDBURL, m.LetterboxdURL); err != nil {
		s.logger.WarnContext(ctx, "movie link update failed", "movie_title", m.Title, "error", err)
	}
}

func detectChanges(prior, merged stats.MovieStats) []FieldChange {
	var changes []FieldChange

	if prior.CriticScore != nil && merged.CriticScore != nil && *prior.CriticScore != *merged.CriticScore {
		changes = append(changes, FieldChange{Field: "criticScore", Old: *prior.CriticScore, New: *merged.CriticScore})
	}
	if prior.DomesticGross != 0 && merged.DomesticGross != 0 && prior.DomesticGross != merged.DomesticGross {
		changes = append(changes, FieldChange{Field: "domesticGross", Old: prior.DomesticGross, New: merged.DomesticGross})
	}
	if prior.InternationalGross != 0 && merged.InternationalGross != 0 && prior.InternationalGross != merged.InternationalGross {
		changes = append(changes, FieldChange{Field: "internationalGross", Old: prior.InternationalGross, New: merged.InternationalGross})
	}
	if prior.OscarNominations != nil && merged.OscarNominations != nil && *prior.OscarNominations != *merged.OscarNominations {
		changes = append(changes, FieldChange{Field: "oscarNominations", Old: *prior.OscarNominations, New: *merged.OscarNominations})
	}

	return changes
}
