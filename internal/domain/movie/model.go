package movie

import (
	"fmt"
	"time"
)

// Movie is an auctionable film. Release dates drive stats eligibility: a
// movie with no past release date has nothing real to fetch yet.
type Movie struct {
	ID                     string
	Title                  string
	Genre                  string
	ActualReleaseDate      *time.Time
	AnticipatedReleaseDate *time.Time
	IMDBURL                string
	LetterboxdURL          string
}

// ReleaseDate returns the actual release date when known, otherwise the
// anticipated one.
func (m Movie) ReleaseDate() *time.Time {
	if m.ActualReleaseDate != nil {
		return m.ActualReleaseDate
	}
	return m.AnticipatedReleaseDate
}

// ReleaseYear reports the year of the effective release date.
func (m Movie) ReleaseYear() (int, bool) {
	d := m.ReleaseDate()
	if d == nil {
		return 0, false
	}
	return d.Year(), true
}

// Released reports whether the movie is out as of now.
func (m Movie) Released(now time.Time) bool {
	d := m.ReleaseDate()
	if d == nil {
		return false
	}
	return !d.After(now)
}

func (m Movie) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("movie id is required")
	}
	if m.Title == "" {
		return fmt.Errorf("movie title is required")
	}
	return nil
}
