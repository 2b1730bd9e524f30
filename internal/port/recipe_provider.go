package port

import "context"

// RecipeIngredient is an ingredient reference in a recipe search result.
type RecipeIngredient struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original"`
	Image    string  `json:"image"`
}

// RecipeMatch is a recipe found for a set of ingredients.
type RecipeMatch struct {
	ID                    int                `json:"id"`
	Title                 string             `json:"title"`
	Image                 string             `json:"image"`
	UsedIngredientCount   int                `json:"used_ingredient_count"`
	MissedIngredientCount int                `json:"missed_ingredient_count"`
	UsedIngredients       []RecipeIngredient `json:"used_ingredients"`
	MissedIngredients     []RecipeIngredient `json:"missed_ingredients"`
	UnusedIngredients     []RecipeIngredient `json:"unused_ingredients"`
	Likes                 int                `json:"likes"`
}

// Nutrient is one line of a recipe's nutrition facts.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// RecipeStep is one numbered instruction step.
type RecipeStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// RecipeDetail is the full information for a single recipe.
type RecipeDetail struct {
	ID             int                `json:"id"`
	Title          string             `json:"title"`
	Image          string             `json:"image"`
	ReadyInMinutes int                `json:"ready_in_minutes"`
	Servings       int                `json:"servings"`
	SourceURL      string             `json:"source_url"`
	ProviderURL    string             `json:"provider_url"`
	Summary        string             `json:"summary"`
	Instructions   string             `json:"instructions"`
	Steps          []RecipeStep       `json:"steps"`
	Ingredients    []RecipeIngredient `json:"ingredients"`
	Nutrients      []Nutrient         `json:"nutrients"`
	Vegetarian     bool               `json:"vegetarian"`
	Vegan          bool               `json:"vegan"`
	GlutenFree     bool               `json:"gluten_free"`
	DairyFree      bool               `json:"dairy_free"`
}

// RecipeProvider abstracts a third-party recipe API.
type RecipeProvider interface {
	FindByIngredients(ctx context.Context, ingredients []string, number int) ([]RecipeMatch, error)
	GetRecipe(ctx context.Context, id int) (*RecipeDetail, error)
}
