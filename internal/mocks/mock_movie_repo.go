package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	CreateFunc      func(ctx context.Context, movie *domain.Movie) error
	GetByIdFunc     func(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	GetByTmdbIdFunc func(ctx context.Context, tmdbID string) (*domain.Movie, error)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) GetByTmdbId(ctx context.Context, tmdbID string) (*domain.Movie, error) {
	return m.GetByTmdbIdFunc(ctx, tmdbID)
}
