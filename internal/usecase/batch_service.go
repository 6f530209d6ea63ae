package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/moviedraft/movie-auction/internal/domain/batch"
	"github.com/moviedraft/movie-auction/internal/domain/movie"
	"github.com/moviedraft/movie-auction/internal/domain/stats"
	"github.com/moviedraft/movie-auction/internal/platform/id"
	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

type BatchConfig struct {
	// InterMovieDelay spaces out reconciliations to stay polite to the
	// external sources. Policy, not correctness.
	InterMovieDelay time.Duration
	// RunTimeout bounds one whole batch run.
	RunTimeout time.Duration
}

type StatsUpdate struct {
	CriticScore        *int  `json:"criticScore"`
	DomesticGross      int64 `json:"domesticGross"`
	InternationalGross int64 `json:"internationalGross"`
	OscarNominations   *int  `json:"oscarNominations"`
	OscarWins          int   `json:"oscarWins"`
}

type MovieReport struct {
	Title   string          `json:"title"`
	Status  ReconcileStatus `json:"status"`
	Errors  []string        `json:"errors"`
	Updates StatsUpdate     `json:"updates"`
	Changes []FieldChange   `json:"changes"`
}

// RunReport is the contract consumed by the notification formatter; field
// names are load-bearing for downstream consumers.
type RunReport struct {
	Total      int           `json:"total"`
	Successful int           `json:"successful"`
	WithErrors int           `json:"withErrors"`
	Skipped    int           `json:"skipped"`
	Movies     []MovieReport `json:"movies"`
}

type AggregateRefresher interface {
	Refresh(ctx context.Context) error
}

type ReportNotifier interface {
	SendRunReport(ctx context.Context, report RunReport) error
}

type noopReportNotifier struct{}

func (noopReportNotifier) SendRunReport(context.Context, RunReport) error { return nil }

func NewNoopReportNotifier() ReportNotifier {
	return noopReportNotifier{}
}

// BatchService drives reconciliation across movies and owns the run report.
type BatchService struct {
	movieRepo  movie.Repository
	reconciler *ReconcilerService
	refresher  AggregateRefresher
	lockRepo   batch.LockRepository
	notifier   ReportNotifier
	idGen      id.Generator
	cfg        BatchConfig
	logger     *logging.Logger
}

func NewBatchService(
	movieRepo movie.Repository,
	reconciler *ReconcilerService,
	refresher AggregateRefresher,
	lockRepo batch.LockRepository,
	notifier ReportNotifier,
	cfg BatchConfig,
	logger *logging.Logger,
) *BatchService {
	if notifier == nil {
		notifier = NewNoopReportNotifier()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.InterMovieDelay < 0 {
		cfg.InterMovieDelay = 0
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 10 * time.Minute
	}

	return &BatchService{
		movieRepo:  movieRepo,
		reconciler: reconciler,
		refresher:  refresher,
		lockRepo:   lockRepo,
		notifier:   notifier,
		idGen:      id.NewRandomGenerator(),
		cfg:        cfg,
		logger:     logger,
	}
}

// RunAll reconciles every movie in stable title order, refreshes the read
// projection once at the end, and sends the run report notification.
// Overlapping runs are rejected with ErrBatchInProgress.
func (s *BatchService) RunAll(ctx context.Context) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "batch.run_all")
	defer span.End()

	acquired, err := s.lockRepo.TryAcquire(ctx)
	if err != nil {
		return RunReport{}, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !acquired {
		return RunReport{}, ErrBatchInProgress
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			s.logger.WarnContext(ctx, "batch lock release failed", "error", releaseErr)
		}
	}()

	runID, err := s.idGen.NewID()
	if err != nil {
		return RunReport{}, fmt.Errorf("generate run id: %w", err)
	}
	logger := s.logger.With("run_id", runID)

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	movies, err := s.movieRepo.ListAll(runCtx)
	if err != nil {
		return RunReport{}, fmt.Errorf("list movies: %w", err)
	}
	sortMoviesByTitle(movies)

	logger.InfoContext(ctx, "batch run started", "total", len(movies))

	report := RunReport{Total: len(movies)}
	for i, m := range movies {
		if err := runCtx.Err(); err != nil {
			logger.WarnContext(ctx, "batch run cut short",
				"processed", len(report.Movies), "total", len(movies), "error", err)
			// Every movie still gets a report entry, so the counters
			// always add back up to the total.
			for _, left := range movies[i:] {
				report.Movies = append(report.Movies, MovieReport{
					Title:   left.Title,
					Status:  ReconcileFailed,
					Errors:  []string{fmt.Sprintf("run cut short: %v", err)},
					Changes: []FieldChange{},
				})
				report.WithErrors++
			}
			break
		}

		outcome := s.reconciler.Reconcile(runCtx, m)
		report.Movies = append(report.Movies, movieReport(outcome))
		switch outcome.Status {
		case ReconcileSuccess:
			report.Successful++
		case ReconcileSkipped:
			report.Skipped++
		default:
			report.WithErrors++
		}

		if i < len(movies)-1 {
			s.pause(runCtx)
		}
	}

	// One refresh per run, win or lose: the movies that did reconcile
	// deserve to show up on the leaderboard.
	if err := s.refresher.Refresh(runCtx); err != nil {
		logger.WarnContext(ctx, "aggregate refresh after batch failed", "error", err)
	}

	if err := s.notifier.SendRunReport(runCtx, report); err != nil {
		logger.WarnContext(ctx, "run report notification failed", "error", err)
	}

	logger.InfoContext(ctx, "batch run finished",
		"successful", report.Successful, "with_errors", report.WithErrors, "skipped", report.Skipped)

	return report, nil
}

// RunOne reconciles a single movie resolved by case-insensitive substring
// match; ambiguous fragments resolve to the first match in title order. The
// projection is refreshed only when the reconciliation wrote a row.
func (s *BatchService) RunOne(ctx context.Context, titleFragment string) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "batch.run_one")
	defer span.End()

	if strings.TrimSpace(titleFragment) == "" {
		return RunReport{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	m, found, err := s.movieRepo.FindByTitle(ctx, titleFragment)
	if err != nil {
		return RunReport{}, fmt.Errorf("find movie by title: %w", err)
	}
	if !found {
		return RunReport{}, fmt.Errorf("%w: no movie matches %q", ErrNotFound, titleFragment)
	}

	outcome := s.reconciler.Reconcile(ctx, m)

	report := RunReport{Total: 1, Movies: []MovieReport{movieReport(outcome)}}
	switch outcome.Status {
	case ReconcileSuccess:
		report.Successful++
	case ReconcileSkipped:
		report.Skipped++
	default:
		report.WithErrors++
	}

	if outcome.Wrote() {
		if err := s.refresher.Refresh(ctx); err != nil {
			s.logger.WarnContext(ctx, "aggregate refresh after single update failed",
				"movie_title", m.Title, "error", err)
		}
	}

	return report, nil
}

func (s *BatchService) pause(ctx context.Context) {
	if s.cfg.InterMovieDelay <= 0 {
		return
	}

	timer := time.NewTimer(s.cfg.InterMovieDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func movieReport(outcome ReconcileOutcome) MovieReport {
	errs := outcome.Errors
	if errs == nil {
		errs = []string{}
	}
	changes := outcome.Changes
	if changes == nil {
		changes = []FieldChange{}
	}

	return MovieReport{
		Title:   outcome.Title,
		Status:  outcome.Status,
		Errors:  errs,
		Updates: statsUpdate(outcome.Updates),
		Changes: changes,
	}
}

func statsUpdate(row stats.MovieStats) StatsUpdate {
	return StatsUpdate{
		CriticScore:        row.CriticScore,
		DomesticGross:      row.DomesticGross,
		InternationalGross: row.InternationalGross,
		OscarNominations:   row.OscarNominations,
		OscarWins:          row.OscarWins,
	}
}

func sortMoviesByTitle(movies []movie.Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		return strings.ToLower(movies[i].Title) < strings.ToLower(movies[j].Title)
	})
}
