package aggregate

// Row is one denormalized pick with its movie's reconciled stats, as served
// by the read projection. Rows are rebuilt wholesale on refresh, never
// patched in place.
type Row struct {
	PlayerID     string
	PlayerName   string
	AuctionID    string
	AuctionYear  int
	AuctionCycle int
	MovieID      string
	MovieTitle   string
	MovieGenre   string
	Amount       int64

	CriticScore        *int
	DomesticGross      int64
	InternationalGross int64
	OscarNominations   *int
	OscarWins          int
}
