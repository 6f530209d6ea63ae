package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moviedraft/movie-auction/internal/domain/movie"
	"github.com/moviedraft/movie-auction/internal/platform/logging"
)

type stubLockRepo struct {
	held       bool
	acquireErr error
	acquires   int
	releases   int
}

func (s *stubLockRepo) TryAcquire(context.Context) (bool, error) {
	s.acquires++
	if s.acquireErr != nil {
		return false, s.acquireErr
	}
	if s.held {
		return false, nil
	}
	s.held = true
	return true, nil
}

func (s *stubLockRepo) Release(context.Context) error {
	s.releases++
	s.held = false
	return nil
}

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(context.Context) error {
	s.calls++
	return s.err
}

type recordingNotifier struct {
	reports []RunReport
	err     error
}

func (s *recordingNotifier) SendRunReport(_ context.Context, report RunReport) error {
	s.reports = append(s.reports, report)
	return s.err
}

func newBatchFixture(movies []movie.Movie, critic *stubCritic, boxOffice *stubBoxOffice, noms *stubNominations) (*BatchService, *stubStatsRepo, *stubLockRepo, *stubRefresher, *recordingNotifier) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	movieRepo := &stubMovieRepo{movies: movies}
	statsRepo := newStubStatsRepo()
	reconciler := newTestReconciler(movieRepo, statsRepo, critic, boxOffice, noms, now)

	lock := &stubLockRepo{}
	refresher := &stubRefresher{}
	notifier := &recordingNotifier{}
	svc := NewBatchService(movieRepo, reconciler, refresher, lock, notifier,
		BatchConfig{InterMovieDelay: 0, RunTimeout: time.Minute}, logging.NewNop())
	return svc, statsRepo, lock, refresher, notifier
}

func released(ts string) *time.Time {
	t, err := time.Parse("2006-01-02", ts)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRunAllReportCompleteness(t *testing.T) {
	movies := []movie.Movie{
		{ID: "m2", Title: "Borealis", ActualReleaseDate: released("2025-05-01")},
		{ID: "m1", Title: "Atlas", ActualReleaseDate: released("2025-02-01")},
		{ID: "m3", Title: "Comet", AnticipatedReleaseDate: released("2027-01-01")},
	}

	svc, _, lock, refresher, notifier := newBatchFixture(movies,
		&stubCritic{res: CriticScoreResult{Score: 88, Found: true}},
		&stubBoxOffice{res: BoxOfficeResult{Domestic: 120_000_000, Found: true}},
		&stubNominations{res: NominationsResult{Count: 1, Found: true}})

	report, err := svc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll(): %v", err)
	}

	if report.Total != 3 {
		t.Fatalf("Total = %d, want 3", report.Total)
	}
	if report.Successful+report.WithErrors+report.Skipped != report.Total {
		t.Fatalf("report does not balance: %+v", report)
	}
	if report.Successful != 2 || report.Skipped != 1 || report.WithErrors != 0 {
		t.Fatalf("report = %+v", report)
	}

	// Movies are processed in stable title order.
	wantOrder := []string{"Atlas", "Borealis", "Comet"}
	for i, m := range report.Movies {
		if m.Title != wantOrder[i] {
			t.Fatalf("Movies[%d].Title = %q, want %q", i, m.Title, wantOrder[i])
		}
	}

	if refresher.calls != 1 {
		t.Fatalf("refresher calls = %d, want 1", refresher.calls)
	}
	if lock.releases != 1 {
		t.Fatalf("lock releases = %d, want 1", lock.releases)
	}
	if len(notifier.reports) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.reports))
	}
}

func TestRunAllFailedMoviesCountAsErrors(t *testing.T) {
	movies := []movie.Movie{
		{ID: "m1", Title: "Atlas", ActualReleaseDate: released("2025-02-01")},
	}

	svc, statsRepo, _, refresher, _ := newBatchFixture(movies,
		&stubCritic{res: CriticScoreResult{Score: 88, Found: true}},
		&stubBoxOffice{res: BoxOfficeResult{Domestic: 1, Found: true}},
		&stubNominations{res: NominationsResult{Found: true}})
	statsRepo.upsertErr = errors.New("db down")

	report, err := svc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll(): %v", err)
	}
	if report.WithErrors != 1 || report.Successful != 0 {
		t.Fatalf("report = %+v", report)
	}
	if report.Movies[0].Status != ReconcileFailed {
		t.Fatalf("Status = %q, want failed", report.Movies[0].Status)
	}

	// The refresh still runs so earlier successes become visible.
	if refresher.calls != 1 {
		t.Fatalf("refresher calls = %d, want 1", refresher.calls)
	}
}

func TestRunAllRejectsOverlappingRuns(t *testing.T) {
	svc, _, lock, _, _ := newBatchFixture(nil, &stubCritic{}, &stubBoxOffice{}, &stubNominations{})
	lock.held = true

	_, err := svc.RunAll(context.Background())
	if !errors.Is(err, ErrBatchInProgress) {
		t.Fatalf("RunAll() err = %v, want ErrBatchInProgress", err)
	}
	if lock.releases != 0 {
		t.Fatalf("lock released without being acquired")
	}
}

func TestRunAllRefresherFailureDoesNotFailBatch(t *testing.T) {
	movies := []movie.Movie{
		{ID: "m1", Title: "Atlas", ActualReleaseDate: released("2025-02-01")},
	}
	svc, _, _, refresher, _ := newBatchFixture(movies,
		&stubCritic{res: CriticScoreResult{Score: 88, Found: true}},
		&stubBoxOffice{res: BoxOfficeResult{Domestic: 120_000_000, Found: true}},
		&stubNominations{res: NominationsResult{Count: 1, Found: true}})
	refresher.err = errors.New("view rebuild failed")

	report, err := svc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll(): %v", err)
	}
	if report.Successful != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRunAllCutShortStillAccountsForEveryMovie(t *testing.T) {
	movies := []movie.Movie{
		{ID: "m1", Title: "Atlas", ActualReleaseDate: released("2025-02-01")},
		{ID: "m2", Title: "Borealis", ActualReleaseDate: released("2025-03-01")},
	}
	svc, _, _, _, notifier := newBatchFixture(movies,
		&stubCritic{res: CriticScoreResult{Score: 88, Found: true}},
		&stubBoxOffice{res: BoxOfficeResult{Domestic: 120_000_000, Found: true}},
		&stubNominations{res: NominationsResult{Count: 1, Found: true}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.RunAll(ctx)
	if err != nil {
		t.Fatalf("RunAll(): %v", err)
	}
	if report.Total != 2 || report.WithErrors != 2 || len(report.Movies) != 2 {
		t.Fatalf("report = %+v", report)
	}
	if got := report.Successful + report.WithErrors + report.Skipped; got != report.Total {
		t.Fatalf("counters sum to %d, want %d", got, report.Total)
	}
	for _, m := range report.Movies {
		if m.Status != ReconcileFailed || len(m.Errors) == 0 {
			t.Fatalf("movie report = %+v", m)
		}
	}
	if len(notifier.reports) != 1 {
		t.Fatalf("notifier reports = %d, want 1", len(notifier.reports))
	}
}

func TestRunOneRefreshesOnlyWhenWritten(t *testing.T) {
	movies := []movie.Movie{
		{ID: "m1", Title: "The Long Atlas", ActualReleaseDate: released("2025-02-01")},
		{ID: "m2", Title: "Comet", AnticipatedReleaseDate: released("2027-01-01")},
	}
	svc, statsRepo, _, refresher, _ := newBatchFixture(movies,
		&stubCritic{res: CriticScoreResult{Score: 88, Found: true}},
		&stubBoxOffice{res: BoxOfficeResult{Domestic: 120_000_000, Found: true}},
		&stubNominations{res: NominationsResult{Count: 1, Found: true}})

	report, err := svc.RunOne(context.Background(), "atlas")
	if err != nil {
		t.Fatalf("RunOne(): %v", err)
	}
	if report.Total != 1 || report.Successful != 1 {
		t.Fatalf("report = %+v", report)
	}
	if refresher.calls != 1 {
		t.Fatalf("refresher calls = %d, want 1", refresher.calls)
	}

	// A skipped movie writes a reset row, so the projection must be
	// refreshed too or it would keep serving the pre-reset stats.
	skippedReport, err := svc.RunOne(context.Background(), "comet")
	if err != nil {
		t.Fatalf("RunOne(skipped): %v", err)
	}
	if skippedReport.Skipped != 1 {
		t.Fatalf("report = %+v", skippedReport)
	}
	if refresher.calls != 2 {
		t.Fatalf("refresher calls = %d after skipped run, want 2", refresher.calls)
	}

	// A failed reconciliation wrote nothing, so nothing to refresh.
	statsRepo.upsertErr = errors.New("connection reset")
	failedReport, err := svc.RunOne(context.Background(), "atlas")
	if err != nil {
		t.Fatalf("RunOne(failed): %v", err)
	}
	if failedReport.WithErrors != 1 {
		t.Fatalf("report = %+v", failedReport)
	}
	if refresher.calls != 2 {
		t.Fatalf("refresher calls = %d after failed run, want 2", refresher.calls)
	}
}

func TestRunOneUnknownTitle(t *testing.T) {
	svc, _, _, _, _ := newBatchFixture(nil, &stubCritic{}, &stubBoxOffice{}, &stubNominations{})

	_, err := svc.RunOne(context.Background(), "nothing matches")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("RunOne() err = %v, want ErrNotFound", err)
	}
}
