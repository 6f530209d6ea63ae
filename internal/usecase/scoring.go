package usecase

import (
	"github.com/moviedraft/movie-auction/internal/domain/aggregate"
	"github.com/moviedraft/movie-auction/internal/domain/stats"
)

type CriterionStatus string

const (
	CriterionAchieved CriterionStatus = "achieved"
	CriterionFailed   CriterionStatus = "failed"
	CriterionPending  CriterionStatus = "pending"
)

const (
	// BoxOfficeThreshold is the domestic gross, in whole dollars, that
	// achieves the box-office criterion.
	BoxOfficeThreshold int64 = 100_000_000
	// CriticThreshold is the minimum critic score that achieves the critic
	// criterion.
	CriticThreshold = 85
	// DefaultAwardThreshold achieves the award criterion on any nomination.
	DefaultAwardThreshold = 1
	// YearlyAwardThreshold is the stricter variant used by the cross-cycle
	// yearly leaderboard.
	YearlyAwardThreshold = 2
)

type ScoreConfig struct {
	AwardThreshold int
}

func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{AwardThreshold: DefaultAwardThreshold}
}

func normalizeScoreConfig(cfg ScoreConfig) ScoreConfig {
	if cfg.AwardThreshold < 1 {
		cfg.AwardThreshold = DefaultAwardThreshold
	}
	return cfg
}

type ScoreInput struct {
	CriticScore   *int
	DomesticGross int64
	Nominations   *int
}

type MovieScore struct {
	BoxOffice CriterionStatus
	Award     CriterionStatus
	Critic    CriterionStatus
	Points    int
}

// VisiblePoints is the externally served points value: nil instead of a bare
// zero, because consumers distinguish "no score yet" from a real total.
func (s MovieScore) VisiblePoints() *int {
	if s.Points == 0 {
		return nil
	}
	points := s.Points
	return &points
}

// Score derives the three criterion statuses and the points total from
// reconciled stats. Pure and deterministic; no I/O.
func Score(in ScoreInput, cfg ScoreConfig) MovieScore {
	cfg = normalizeScoreConfig(cfg)

	score := MovieScore{
		BoxOffice: boxOfficeStatus(in.DomesticGross),
		Award:     awardStatus(in.Nominations, cfg.AwardThreshold),
		Critic:    criticStatus(in.CriticScore),
	}
	for _, status := range []CriterionStatus{score.BoxOffice, score.Award, score.Critic} {
		if status == CriterionAchieved {
			score.Points++
		}
	}
	return score
}

func ScoreStats(row stats.MovieStats, cfg ScoreConfig) MovieScore {
	return Score(ScoreInput{
		CriticScore:   row.CriticScore,
		DomesticGross: row.DomesticGross,
		Nominations:   row.OscarNominations,
	}, cfg)
}

func ScoreRow(row aggregate.Row, cfg ScoreConfig) MovieScore {
	return Score(ScoreInput{
		CriticScore:   row.CriticScore,
		DomesticGross: row.DomesticGross,
		Nominations:   row.OscarNominations,
	}, cfg)
}

// A zero gross is indistinguishable from "not fetched yet" in this domain,
// so it stays pending rather than failed.
func boxOfficeStatus(domestic int64) CriterionStatus {
	switch {
	case domestic >= BoxOfficeThreshold:
		return CriterionAchieved
	case domestic > 0:
		return CriterionFailed
	default:
		return CriterionPending
	}
}

func awardStatus(nominations *int, threshold int) CriterionStatus {
	if nominations == nil {
		return CriterionPending
	}
	if *nominations >= threshold {
		return CriterionAchieved
	}
	return CriterionFailed
}

func criticStatus(score *int) CriterionStatus {
	if score == nil {
		return CriterionPending
	}
	if *score >= CriticThreshold {
		return CriterionAchieved
	}
	return CriterionFailed
}
