package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"pantrify/internal/domain"
	"pantrify/internal/port"
)

// MaxRecipeResults bounds the number parameter passed to the provider.
const MaxRecipeResults = 100

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// RecipeWithMatch is a recipe match annotated with the share of its
// ingredients already in the pantry.
type RecipeWithMatch struct {
	port.RecipeMatch
	MatchPercentage int `json:"match_percentage"`
}

// PantryRecipes is the result of a pantry-based recipe search.
type PantryRecipes struct {
	PantryIngredients []string          `json:"pantry_ingredients"`
	Recipes           []RecipeWithMatch `json:"recipes"`
}

// RecipeConfig holds the recipe service settings.
type RecipeConfig struct {
	DefaultNumber int
	CacheTTL      time.Duration
}

// RecipeService defines the recipe lookup contract.
type RecipeService interface {
	FindByIngredients(ctx context.Context, ingredients []string, number int) ([]port.RecipeMatch, error)
	FindByPantry(ctx context.Context, userID uuid.UUID, number int) (*PantryRecipes, error)
	GetRecipe(ctx context.Context, id int) (*port.RecipeDetail, error)
}

type recipeService struct {
	provider  port.RecipeProvider
	pantrySvc PantryService
	cache     *cache.Cache
	cfg       RecipeConfig
}

// NewRecipeService creates a new RecipeService. Recipe details are cached for
// cfg.CacheTTL; a zero TTL disables caching.
func NewRecipeService(provider port.RecipeProvider, pantrySvc PantryService, cfg RecipeConfig) RecipeService {
	if cfg.DefaultNumber <= 0 {
		cfg.DefaultNumber = 12
	}
	svc := &recipeService{
		provider:  provider,
		pantrySvc: pantrySvc,
		cfg:       cfg,
	}
	if cfg.CacheTTL > 0 {
		svc.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return svc
}

func (s *recipeService) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]port.RecipeMatch, error) {
	cleaned := cleanIngredients(ingredients)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient is required", domain.ErrInvalidInput)
	}

	matches, err := s.provider.FindByIngredients(ctx, cleaned, s.resolveNumber(number))
	if err != nil {
		log.Printf("recipeService.FindByIngredients: provider error: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRecipesUnavailable, err)
	}
	return matches, nil
}

func (s *recipeService) FindByPantry(ctx context.Context, userID uuid.UUID, number int) (*PantryRecipes, error) {
	names, err := s.pantrySvc.IngredientNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recipeService.FindByPantry: %w", err)
	}
	if len(names) == 0 {
		return &PantryRecipes{PantryIngredients: []string{}, Recipes: []RecipeWithMatch{}}, nil
	}

	matches, err := s.provider.FindByIngredients(ctx, names, s.resolveNumber(number))
	if err != nil {
		log.Printf("recipeService.FindByPantry: provider error for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRecipesUnavailable, err)
	}

	out := &PantryRecipes{
		PantryIngredients: names,
		Recipes:           make([]RecipeWithMatch, 0, len(matches)),
	}
	for _, m := range matches {
		out.Recipes = append(out.Recipes, RecipeWithMatch{
			RecipeMatch:     m,
			MatchPercentage: MatchPercentage(m.UsedIngredientCount, m.MissedIngredientCount),
		})
	}
	return out, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id int) (*port.RecipeDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid recipe id", domain.ErrInvalidInput)
	}

	key := strconv.Itoa(id)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cloneRecipe(cached.(*port.RecipeDetail)), nil
		}
	}

	detail, err := s.provider.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		log.Printf("recipeService.GetRecipe: provider error for recipe %d: %v", id, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRecipesUnavailable, err)
	}

	detail.Summary = StripHTML(detail.Summary)
	detail.Instructions = StripHTML(detail.Instructions)

	if s.cache != nil {
		s.cache.SetDefault(key, detail)
	}
	return cloneRecipe(detail), nil
}

// cloneRecipe copies d deeply enough that callers cannot reach the cached value.
func cloneRecipe(d *port.RecipeDetail) *port.RecipeDetail {
	out := *d
	out.Steps = slices.Clone(d.Steps)
	out.Ingredients = slices.Clone(d.Ingredients)
	out.Nutrients = slices.Clone(d.Nutrients)
	return &out
}

func (s *recipeService) resolveNumber(number int) int {
	if number <= 0 {
		return s.cfg.DefaultNumber
	}
	if number > MaxRecipeResults {
		return MaxRecipeResults
	}
	return number
}

// MatchPercentage returns round(used / (used + missed) * 100), or 0 when the
// recipe lists no ingredients.
func MatchPercentage(used, missed int) int {
	total := used + missed
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(used) / float64(total) * 100))
}

// StripHTML removes markup tags from provider text.
func StripHTML(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		name := strings.TrimSpace(SanitizeInput(raw))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
