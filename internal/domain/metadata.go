package domain

import "context"

// MovieMetadata is the display payload returned by the movie metadata
// provider. Fields mirror the provider's response and are passed through to
// clients; booking logic never derives anything from them.
type MovieMetadata struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	BackdropPath string   `json:"backdrop_path"`
	PosterPath   string   `json:"poster_path"`
	ReleaseDate  string   `json:"release_date"`
	Runtime      int      `json:"runtime,omitempty"`
	VoteAverage  float64  `json:"vote_average"`
	VoteCount    int      `json:"vote_count"`
	Genres       []Genre  `json:"genres,omitempty"`
	Language     string   `json:"original_language"`
	Tagline      string   `json:"tagline,omitempty"`
	Cast         []Credit `json:"cast,omitempty"`
	Videos       []Video  `json:"videos,omitempty"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Credit struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type MetadataProvider interface {
	NowPlaying(ctx context.Context) ([]MovieMetadata, error)
	Popular(ctx context.Context) ([]MovieMetadata, error)

	// MovieDetails returns the movie's full metadata including cast and
	// trailer videos, keyed by the provider's movie id.
	MovieDetails(ctx context.Context, movieID string) (*MovieMetadata, error)
}
