package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type MockShowRepo struct {
	domain.ShowRepository
	CreateFunc          func(ctx context.Context, show *domain.Show) error
	GetByIdFunc         func(ctx context.Context, id uuid.UUID) (*domain.Show, error)
	GetAllFunc          func(ctx context.Context) ([]*domain.Show, error)
	GetAllByMovieIdFunc func(ctx context.Context, movieID uuid.UUID) ([]*domain.Show, error)
	UpdateFunc          func(ctx context.Context, id uuid.UUID, update domain.ShowUpdate) (*domain.Show, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	ReserveSeatsFunc    func(ctx context.Context, showID uuid.UUID, seatLabels []string) error
	ReleaseSeatsFunc    func(ctx context.Context, showID uuid.UUID, seatLabels []string) error
}

func (m *MockShowRepo) Create(ctx context.Context, show *domain.Show) error {
	return m.CreateFunc(ctx, show)
}

func (m *MockShowRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Show, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowRepo) GetAll(ctx context.Context) ([]*domain.Show, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockShowRepo) GetAllByMovieId(ctx context.Context, movieID uuid.UUID) ([]*domain.Show, error) {
	return m.GetAllByMovieIdFunc(ctx, movieID)
}

func (m *MockShowRepo) Update(ctx context.Context, id uuid.UUID, update domain.ShowUpdate) (*domain.Show, error) {
	return m.UpdateFunc(ctx, id, update)
}

func (m *MockShowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockShowRepo) ReserveSeats(ctx context.Context, showID uuid.UUID, seatLabels []string) error {
	return m.ReserveSeatsFunc(ctx, showID, seatLabels)
}

func (m *MockShowRepo) ReleaseSeats(ctx context.Context, showID uuid.UUID, seatLabels []string) error {
	return m.ReleaseSeatsFunc(ctx, showID, seatLabels)
}
