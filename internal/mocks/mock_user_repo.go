package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-service/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	GetByIdFunc func(ctx context.Context, id string) (*domain.User, error)
}

func (m *MockUserRepo) GetById(ctx context.Context, id string) (*domain.User, error) {
	return m.GetByIdFunc(ctx, id)
}
