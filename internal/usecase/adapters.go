package usecase

import "context"

// Adapter outcome contract: a non-nil error means the source could not be
// consulted (timeout included); Found=false with a nil error means the source
// answered and confirmed the value is absent. Callers must never collapse the
// two — an error falls back to stored data, a confirmed absence overwrites it.

type CriticScoreResult struct {
	Score int
	Found bool
}

type BoxOfficeResult struct {
	Domestic      int64
	International int64
	Found         bool
}

type NominationsResult struct {
	Count int
	Found bool
}

// CriticScoreProvider fetches an aggregate critic score (0-100) by title.
type CriticScoreProvider interface {
	FetchCriticScore(ctx context.Context, title string) (CriticScoreResult, error)
}

// BoxOfficeProvider fetches gross figures by title and release year.
type BoxOfficeProvider interface {
	FetchBoxOffice(ctx context.Context, title string, year int) (BoxOfficeResult, error)
}

// NominationsProvider fetches the award nomination count by title and
// release year.
type NominationsProvider interface {
	FetchNominations(ctx context.Context, title string, year int) (NominationsResult, error)
}
