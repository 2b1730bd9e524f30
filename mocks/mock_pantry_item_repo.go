package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantrify/internal/domain"
)

// MockPantryItemRepo is a mock implementation of port.PantryItemRepository.
type MockPantryItemRepo struct {
	mock.Mock
}

func (m *MockPantryItemRepo) Create(ctx context.Context, item *domain.PantryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPantryItemRepo) CreateBatch(ctx context.Context, items []domain.PantryItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockPantryItemRepo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.PantryItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PantryItem), args.Error(1)
}

func (m *MockPantryItemRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PantryItem, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PantryItem), args.Int(1), args.Error(2)
}

func (m *MockPantryItemRepo) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.PantryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PantryItem), args.Error(1)
}

func (m *MockPantryItemRepo) Update(ctx context.Context, item *domain.PantryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPantryItemRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}
