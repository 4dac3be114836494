package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Movie is the denormalized metadata cache for one movie, keyed by the
// metadata provider's id. Created lazily the first time a show is scheduled
// for the movie; only used for display, never for booking logic.
type Movie struct {
	ID           uuid.UUID
	TMDBID       string
	Title        string
	Overview     string
	BackdropPath string
	PosterPath   string
	ReleaseDate  string
	Runtime      int
	VoteAverage  float64
	VoteCount    int
	Genres       []string
	Language     string
	Tagline      string
	CastMembers  []string
	CreatedAt    time.Time
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetById(ctx context.Context, id uuid.UUID) (*Movie, error)
	GetByTmdbId(ctx context.Context, tmdbID string) (*Movie, error)
}
