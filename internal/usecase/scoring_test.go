package usecase

import (
	"testing"

	"github.com/moviedraft/movie-auction/internal/domain/stats"
)

func intPtr(v int) *int { return &v }

func TestScoreBoxOfficeBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		domestic int64
		want     CriterionStatus
	}{
		{name: "exactly at threshold", domestic: 100_000_000, want: CriterionAchieved},
		{name: "one dollar short", domestic: 99_999_999, want: CriterionFailed},
		{name: "small gross", domestic: 1, want: CriterionFailed},
		{name: "zero means no data", domestic: 0, want: CriterionPending},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Score(ScoreInput{DomesticGross: tc.domestic}, DefaultScoreConfig())
			if got.BoxOffice != tc.want {
				t.Fatalf("BoxOffice = %q, want %q", got.BoxOffice, tc.want)
			}
		})
	}
}

func TestScoreCriticBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		score *int
		want  CriterionStatus
	}{
		{name: "exactly at threshold", score: intPtr(85), want: CriterionAchieved},
		{name: "one point short", score: intPtr(84), want: CriterionFailed},
		{name: "absent", score: nil, want: CriterionPending},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Score(ScoreInput{CriticScore: tc.score}, DefaultScoreConfig())
			if got.Critic != tc.want {
				t.Fatalf("Critic = %q, want %q", got.Critic, tc.want)
			}
		})
	}
}

func TestScoreAwardThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		nominations *int
		threshold   int
		want        CriterionStatus
	}{
		{name: "absent is pending", nominations: nil, threshold: 1, want: CriterionPending},
		{name: "confirmed zero fails", nominations: intPtr(0), threshold: 1, want: CriterionFailed},
		{name: "one nomination achieves default", nominations: intPtr(1), threshold: 1, want: CriterionAchieved},
		{name: "one nomination fails yearly threshold", nominations: intPtr(1), threshold: 2, want: CriterionFailed},
		{name: "two nominations achieve yearly threshold", nominations: intPtr(2), threshold: 2, want: CriterionAchieved},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Score(ScoreInput{Nominations: tc.nominations}, ScoreConfig{AwardThreshold: tc.threshold})
			if got.Award != tc.want {
				t.Fatalf("Award = %q, want %q", got.Award, tc.want)
			}
		})
	}
}

func TestScorePointsAndVisibility(t *testing.T) {
	t.Parallel()

	full := Score(ScoreInput{
		CriticScore:   intPtr(90),
		DomesticGross: 150_000_000,
		Nominations:   intPtr(3),
	}, DefaultScoreConfig())
	if full.Points != 3 {
		t.Fatalf("Points = %d, want 3", full.Points)
	}
	if got := full.VisiblePoints(); got == nil || *got != 3 {
		t.Fatalf("VisiblePoints() = %v, want 3", got)
	}

	empty := Score(ScoreInput{}, DefaultScoreConfig())
	if empty.Points != 0 {
		t.Fatalf("Points = %d, want 0", empty.Points)
	}
	if got := empty.VisiblePoints(); got != nil {
		t.Fatalf("VisiblePoints() = %v, want nil", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	row := stats.MovieStats{
		CriticScore:      intPtr(70),
		DomesticGross:    50_000_000,
		OscarNominations: intPtr(0),
	}

	first := ScoreStats(row, DefaultScoreConfig())
	second := ScoreStats(row, DefaultScoreConfig())
	if first != second {
		t.Fatalf("ScoreStats() not deterministic: %+v vs %+v", first, second)
	}
	if first.BoxOffice != CriterionFailed || first.Critic != CriterionFailed || first.Award != CriterionFailed {
		t.Fatalf("unexpected statuses: %+v", first)
	}
}
