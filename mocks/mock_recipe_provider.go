package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pantrify/internal/port"
)

// MockRecipeProvider is a mock implementation of port.RecipeProvider.
type MockRecipeProvider struct {
	mock.Mock
}

func (m *MockRecipeProvider) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]port.RecipeMatch, error) {
	args := m.Called(ctx, ingredients, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.RecipeMatch), args.Error(1)
}

func (m *MockRecipeProvider) GetRecipe(ctx context.Context, id int) (*port.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RecipeDetail), args.Error(1)
}
