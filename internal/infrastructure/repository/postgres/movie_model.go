package postgres

import "time"

type movieTableModel struct {
	ID                     int64      `db:"id"`
	PublicID               string     `db:"public_id"`
	Title                  string     `db:"title"`
	Genre                  string     `db:"genre"`
	ActualReleaseDate      *time.Time `db:"actual_release_date"`
	AnticipatedReleaseDate *time.Time `db:"anticipated_release_date"`
	IMDBURL                string     `db:"imdb_url"`
	LetterboxdURL          string     `db:"letterboxd_url"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
}
