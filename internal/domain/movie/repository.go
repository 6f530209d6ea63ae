package movie

import "context"

// Repository describes movie persistence needs from use cases.
type Repository interface {
	ListAll(ctx context.Context) ([]Movie, error)
	GetByID(ctx context.Context, movieID string) (Movie, bool, error)
	// FindByTitle resolves a case-insensitive substring match; when several
	// movies match, the first in title order wins.
	FindByTitle(ctx context.Context, fragment string) (Movie, bool, error)
	UpdateLinks(ctx context.Context, movieID, imdbURL, letterboxdURL string) error
}
