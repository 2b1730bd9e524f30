package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantrify/internal/domain"
	"pantrify/internal/service"
)

// MockPantryService is a mock implementation of service.PantryService.
type MockPantryService struct {
	mock.Mock
}

func (m *MockPantryService) Create(ctx context.Context, userID uuid.UUID, input service.CreateItemInput) (*domain.PantryItem, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PantryItem), args.Error(1)
}

func (m *MockPantryService) BulkCreate(ctx context.Context, userID uuid.UUID, input service.BulkCreateInput) ([]domain.PantryItem, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PantryItem), args.Error(1)
}

func (m *MockPantryService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PantryItem, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PantryItem), args.Int(1), args.Error(2)
}

func (m *MockPantryService) Update(ctx context.Context, userID, itemID uuid.UUID, input service.UpdateItemInput) (*domain.PantryItem, error) {
	args := m.Called(ctx, userID, itemID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PantryItem), args.Error(1)
}

func (m *MockPantryService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockPantryService) IngredientNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPantryService) Export(ctx context.Context, userID uuid.UUID, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, userID, format, w)
	return args.Error(0)
}
