package mocks

import (
	"context"

	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type MockAdminRepo struct {
	domain.AdminRepository
	CreateFunc     func(ctx context.Context, admin *domain.Admin) error
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Admin, error)
	GetByIdFunc    func(ctx context.Context, id int64) (*domain.Admin, error)
}

func (m *MockAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	return m.CreateFunc(ctx, admin)
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockAdminRepo) GetById(ctx context.Context, id int64) (*domain.Admin, error) {
	return m.GetByIdFunc(ctx, id)
}
