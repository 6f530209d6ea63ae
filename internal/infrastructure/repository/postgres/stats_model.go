package postgres

import (
	"database/sql"
	"time"
)

type movieStatsTableModel struct {
	ID                 int64         `db:"id"`
	MovieID            string        `db:"movie_public_id"`
	CriticScore        sql.NullInt64 `db:"critic_score"`
	DomesticGross      int64         `db:"domestic_gross"`
	InternationalGross int64         `db:"international_gross"`
	OscarNominations   sql.NullInt64 `db:"oscar_nominations"`
	OscarWins          int           `db:"oscar_wins"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

type movieStatsInsertModel struct {
	MovieID            string        `db:"movie_public_id"`
	CriticScore        sql.NullInt64 `db:"critic_score"`
	DomesticGross      int64         `db:"domestic_gross"`
	InternationalGross int64         `db:"international_gross"`
	OscarNominations   sql.NullInt64 `db:"oscar_nominations"`
	OscarWins          int           `db:"oscar_wins"`
	UpdatedAt          time.Time     `db:"updated_at"`
}
