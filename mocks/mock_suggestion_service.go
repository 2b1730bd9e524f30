package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantrify/internal/domain"
	"pantrify/internal/service"
)

// MockSuggestionService is a mock implementation of service.SuggestionService.
type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) List(ctx context.Context) ([]domain.PantrySuggestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PantrySuggestion), args.Error(1)
}

func (m *MockSuggestionService) Upsert(ctx context.Context, input service.UpsertSuggestionInput) (*domain.PantrySuggestion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PantrySuggestion), args.Error(1)
}

func (m *MockSuggestionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
