package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

const (
	listCacheTTL    = 10 * time.Minute
	detailsCacheTTL = 6 * time.Hour
)

// CachedProvider wraps a metadata provider with a redis read-through cache.
// Cache failures fall back to the upstream provider; a broken cache must
// never take the catalog down.
type CachedProvider struct {
	provider domain.MetadataProvider
	redis    redis.UniversalClient
	logger   *slog.Logger
}

func NewCachedProvider(provider domain.MetadataProvider, redisClient redis.UniversalClient, logger *slog.Logger) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		redis:    redisClient,
		logger:   logger,
	}
}

func (c *CachedProvider) NowPlaying(ctx context.Context) ([]domain.MovieMetadata, error) {
	return c.cachedList(ctx, "tmdb:now_playing", c.provider.NowPlaying)
}

func (c *CachedProvider) Popular(ctx context.Context) ([]domain.MovieMetadata, error) {
	return c.cachedList(ctx, "tmdb:popular", c.provider.Popular)
}

func (c *CachedProvider) cachedList(
	ctx context.Context,
	key string,
	fetch func(context.Context) ([]domain.MovieMetadata, error)) ([]domain.MovieMetadata, error) {

	var movies []domain.MovieMetadata

	if c.readCache(ctx, key, &movies) {
		return movies, nil
	}

	movies, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.writeCache(ctx, key, movies, listCacheTTL)

	return movies, nil
}

func (c *CachedProvider) MovieDetails(ctx context.Context, movieID string) (*domain.MovieMetadata, error) {
	key := "tmdb:movie:" + movieID

	var movie domain.MovieMetadata

	if c.readCache(ctx, key, &movie) {
		return &movie, nil
	}

	details, err := c.provider.MovieDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}

	c.writeCache(ctx, key, details, detailsCacheTTL)

	return details, nil
}

func (c *CachedProvider) readCache(ctx context.Context, key string, dst any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("metadata cache read failed", "key", key, "error", err)
		}

		return false
	}

	err = json.Unmarshal(data, dst)
	if err != nil {
		c.logger.Warn("metadata cache entry corrupt", "key", key, "error", err)
		return false
	}

	return true
}

func (c *CachedProvider) writeCache(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	err = c.redis.Set(ctx, key, data, ttl).Err()
	if err != nil {
		c.logger.Warn("metadata cache write failed", "key", key, "error", err)
	}
}
