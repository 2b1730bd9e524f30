package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantrify/internal/domain"
)

// MockSuggestionRepo is a mock implementation of port.SuggestionRepository.
type MockSuggestionRepo struct {
	mock.Mock
}

func (m *MockSuggestionRepo) List(ctx context.Context) ([]domain.PantrySuggestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PantrySuggestion), args.Error(1)
}

func (m *MockSuggestionRepo) Upsert(ctx context.Context, s *domain.PantrySuggestion) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSuggestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
