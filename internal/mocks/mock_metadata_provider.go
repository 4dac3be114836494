package mocks

import (
	"context"

	"github.com/showxpress/movie-ticket-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMetadataProvider struct {
	mock.Mock
	domain.MetadataProvider
}

func (m *MockMetadataProvider) NowPlaying(ctx context.Context) ([]domain.MovieMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovieMetadata), args.Error(1)
}

func (m *MockMetadataProvider) Popular(ctx context.Context) ([]domain.MovieMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovieMetadata), args.Error(1)
}

func (m *MockMetadataProvider) MovieDetails(ctx context.Context, movieID string) (*domain.MovieMetadata, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovieMetadata), args.Error(1)
}
