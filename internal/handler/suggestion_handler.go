package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pantrify/internal/service"
)

// SuggestionHandler handles pantry suggestion endpoints.
type SuggestionHandler struct {
	suggestionService service.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestionService service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// List handles GET /api/v1/pantry-suggestions
// @Summary List pantry suggestions
// @Tags suggestions
// @Produce json
// @Success 200 {object} Response{data=[]domain.PantrySuggestion}
// @Security BearerAuth
// @Router /pantry-suggestions [get]
func (h *SuggestionHandler) List(c *gin.Context) {
	suggestions, err := h.suggestionService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, suggestions)
}

// Upsert handles POST /api/v1/pantry-suggestions (admin only)
// @Summary Create or replace a suggestion
// @Tags suggestions
// @Accept json
// @Produce json
// @Param request body service.UpsertSuggestionInput true "Suggestion"
// @Success 200 {object} Response{data=domain.PantrySuggestion}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 403 {object} ErrorResponseBody "Admin only"
// @Security BearerAuth
// @Router /pantry-suggestions [post]
func (h *SuggestionHandler) Upsert(c *gin.Context) {
	var input service.UpsertSuggestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	suggestion, err := h.suggestionService.Upsert(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, suggestion)
}

// Delete handles DELETE /api/v1/pantry-suggestions/:id (admin only)
// @Summary Delete a suggestion
// @Tags suggestions
// @Produce json
// @Param id path string true "Suggestion ID"
// @Success 200 {object} Response "Suggestion deleted"
// @Failure 404 {object} ErrorResponseBody "Suggestion not found"
// @Security BearerAuth
// @Router /pantry-suggestions/{id} [delete]
func (h *SuggestionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.suggestionService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "suggestion deleted"})
}
