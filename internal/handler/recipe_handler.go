package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pantrify/internal/service"
)

// RecipeHandler handles recipe lookup endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// parseNumber reads the optional number query parameter; zero selects the default.
func parseNumber(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("number"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FindByIngredients handles GET /api/v1/recipes
// @Summary Find recipes by ingredients
// @Tags recipes
// @Produce json
// @Param ingredients query string true "Comma-separated ingredient names"
// @Param number query int false "Maximum results" default(12)
// @Success 200 {object} Response{data=[]port.RecipeMatch}
// @Failure 400 {object} ErrorResponseBody "No ingredients given"
// @Failure 503 {object} ErrorResponseBody "Recipe service unavailable"
// @Security BearerAuth
// @Router /recipes [get]
func (h *RecipeHandler) FindByIngredients(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("ingredients"))
	if raw == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "ingredients parameter is required")
		return
	}

	recipes, err := h.recipeService.FindByIngredients(c.Request.Context(), strings.Split(raw, ","), parseNumber(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, recipes)
}

// FindByPantry handles GET /api/v1/recipes/by-pantry
// @Summary Recipes from my pantry
// @Description Find recipes using the caller's pantry items, each with a match_percentage
// @Tags recipes
// @Produce json
// @Param number query int false "Maximum results" default(12)
// @Success 200 {object} Response{data=service.PantryRecipes}
// @Failure 503 {object} ErrorResponseBody "Recipe service unavailable"
// @Security BearerAuth
// @Router /recipes/by-pantry [get]
func (h *RecipeHandler) FindByPantry(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	result, err := h.recipeService.FindByPantry(c.Request.Context(), userID, parseNumber(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Get handles GET /api/v1/recipes/:id
// @Summary Recipe details
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} Response{data=port.RecipeDetail}
// @Failure 400 {object} ErrorResponseBody "Invalid recipe ID"
// @Failure 404 {object} ErrorResponseBody "Recipe not found"
// @Failure 503 {object} ErrorResponseBody "Recipe service unavailable"
// @Security BearerAuth
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, recipe)
}
