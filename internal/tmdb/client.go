package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client talks to the TMDB API. It is a pure display-data proxy: responses
// are passed through to callers and never feed booking logic.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) NowPlaying(ctx context.Context) ([]domain.MovieMetadata, error) {
	return c.movieList(ctx, "/movie/now_playing")
}

func (c *Client) Popular(ctx context.Context) ([]domain.MovieMetadata, error) {
	return c.movieList(ctx, "/movie/popular")
}

func (c *Client) movieList(ctx context.Context, path string) ([]domain.MovieMetadata, error) {
	var payload struct {
		Results []domain.MovieMetadata `json:"results"`
	}

	err := c.get(ctx, path, &payload)
	if err != nil {
		return nil, err
	}

	return payload.Results, nil
}

// MovieDetails merges the movie, credits and videos endpoints into one
// metadata record, the shape the catalog pages render from.
func (c *Client) MovieDetails(ctx context.Context, movieID string) (*domain.MovieMetadata, error) {
	var movie domain.MovieMetadata

	err := c.get(ctx, "/movie/"+movieID, &movie)
	if err != nil {
		return nil, err
	}

	var credits struct {
		Cast []domain.Credit `json:"cast"`
	}

	err = c.get(ctx, "/movie/"+movieID+"/credits", &credits)
	if err != nil {
		return nil, err
	}

	var videos struct {
		Results []domain.Video `json:"results"`
	}

	err = c.get(ctx, "/movie/"+movieID+"/videos", &videos)
	if err != nil {
		return nil, err
	}

	movie.Cast = credits.Cast
	movie.Videos = videos.Results

	return &movie, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrRecordNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: unexpected status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
