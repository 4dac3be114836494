package mocks

import (
	"context"

	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	UpsertFunc          func(ctx context.Context, user *domain.User) error
	GetByExternalIdFunc func(ctx context.Context, externalID string) (*domain.User, error)
	GetAllFunc          func(ctx context.Context) ([]*domain.User, error)
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return m.UpsertFunc(ctx, user)
}

func (m *MockUserRepo) GetByExternalId(ctx context.Context, externalID string) (*domain.User, error) {
	return m.GetByExternalIdFunc(ctx, externalID)
}

func (m *MockUserRepo) GetAll(ctx context.Context) ([]*domain.User, error) {
	return m.GetAllFunc(ctx)
}
