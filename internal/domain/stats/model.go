package stats

import "time"

// MovieStats holds the reconciled outcome signals for one movie. Pointer
// fields distinguish "unknown/pending" (nil) from a confirmed value,
// including confirmed zero.
type MovieStats struct {
	MovieID            string
	CriticScore        *int
	DomesticGross      int64
	InternationalGross int64
	OscarNominations   *int
	OscarWins          int
	UpdatedAt          time.Time
}

// PendingReset returns the forced empty state written for a movie that is not
// released yet. Win count carries over: wins are entered manually and are not
// subject to fetch staleness.
func PendingReset(movieID string, priorWins int) MovieStats {
	return MovieStats{
		MovieID:   movieID,
		OscarWins: priorWins,
	}
}
