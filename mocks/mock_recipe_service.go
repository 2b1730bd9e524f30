package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantrify/internal/port"
	"pantrify/internal/service"
)

// MockRecipeService is a mock implementation of service.RecipeService.
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]port.RecipeMatch, error) {
	args := m.Called(ctx, ingredients, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.RecipeMatch), args.Error(1)
}

func (m *MockRecipeService) FindByPantry(ctx context.Context, userID uuid.UUID, number int) (*service.PantryRecipes, error) {
	args := m.Called(ctx, userID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PantryRecipes), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id int) (*port.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RecipeDetail), args.Error(1)
}
