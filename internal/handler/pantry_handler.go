package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pantrify/internal/domain"
	"pantrify/internal/export"
	"pantrify/internal/service"
)

// PantryHandler handles pantry item endpoints.
type PantryHandler struct {
	pantryService service.PantryService
	now           func() time.Time
}

// NewPantryHandler creates a new PantryHandler.
func NewPantryHandler(pantryService service.PantryService) *PantryHandler {
	return &PantryHandler{pantryService: pantryService, now: time.Now}
}

// parseDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: expiration_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return &t, nil
}

// List handles GET /api/v1/pantry-items
// @Summary List pantry items
// @Description List the caller's pantry items, newest first
// @Tags pantry
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]domain.PantryItem,meta=PagMeta}
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /pantry-items [get]
func (h *PantryHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.pantryService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Create handles POST /api/v1/pantry-items
// @Summary Add a pantry item
// @Description Add an item; qty defaults to 1
// @Tags pantry
// @Accept json
// @Produce json
// @Param request body CreatePantryItemRequest true "Item details"
// @Success 201 {object} Response{data=domain.PantryItem}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /pantry-items [post]
func (h *PantryHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req CreatePantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	input := service.CreateItemInput{Name: req.Name, Qty: req.Qty}
	if req.ExpirationDate != nil && strings.TrimSpace(*req.ExpirationDate) != "" {
		exp, err := parseDate(*req.ExpirationDate)
		if err != nil {
			HandleError(c, err)
			return
		}
		input.ExpirationDate = exp
	}

	item, err := h.pantryService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// BulkCreate handles POST /api/v1/pantry-items/bulk
// @Summary Confirm scanned items
// @Description Add the items the user confirmed after a scan
// @Tags pantry
// @Accept json
// @Produce json
// @Param request body service.BulkCreateInput true "Confirmed items"
// @Success 201 {object} Response{data=[]domain.PantryItem}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /pantry-items/bulk [post]
func (h *PantryHandler) BulkCreate(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.BulkCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "items are required")
		return
	}

	items, err := h.pantryService.BulkCreate(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, items)
}

// Update handles PATCH /api/v1/pantry-items/:id
// @Summary Update a pantry item
// @Description Partially update name, qty or expiration date. An empty expiration_date clears it.
// @Tags pantry
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body UpdatePantryItemRequest true "Fields to change"
// @Success 200 {object} Response{data=domain.PantryItem}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /pantry-items/{id} [patch]
func (h *PantryHandler) Update(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	input := service.UpdateItemInput{Name: req.Name, Qty: req.Qty}
	if req.ExpirationDate != nil {
		if strings.TrimSpace(*req.ExpirationDate) == "" {
			input.ClearExpiration = true
		} else {
			exp, err := parseDate(*req.ExpirationDate)
			if err != nil {
				HandleError(c, err)
				return
			}
			input.ExpirationDate = exp
		}
	}

	item, err := h.pantryService.Update(c.Request.Context(), userID, itemID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/pantry-items/:id
// @Summary Delete a pantry item
// @Tags pantry
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} Response "Item deleted"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /pantry-items/{id} [delete]
func (h *PantryHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.pantryService.Delete(c.Request.Context(), userID, itemID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "item deleted"})
}

// Export handles GET /api/v1/pantry-items/export
// @Summary Export the pantry
// @Description Download every pantry item as CSV or XLSX
// @Tags pantry
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /pantry-items/export [get]
func (h *PantryHandler) Export(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	format, err := domain.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	// Render fully before writing headers so a failure still yields a JSON error.
	var buf bytes.Buffer
	if err := h.pantryService.Export(c.Request.Context(), userID, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("pantry", format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
