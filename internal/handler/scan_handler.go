package handler

import (
	"github.com/gin-gonic/gin"

	"pantrify/internal/domain"
	"pantrify/internal/service"
)

// ScanHandler handles photo scan endpoints.
type ScanHandler struct {
	scanService service.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Analyze handles POST /api/v1/vision/analyze
// @Summary Detect food items in a photo
// @Description Classify an uploaded image and return the reconciled pantry item names together with the raw labels and objects
// @Tags vision
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Photo (jpg, png, webp or gif)"
// @Success 200 {object} Response{data=service.AnalyzeOutput}
// @Failure 400 {object} ErrorResponseBody "Missing or unsupported image"
// @Failure 413 {object} ErrorResponseBody "Image too large"
// @Failure 429 {object} ErrorResponseBody "Vision rate limited"
// @Failure 503 {object} ErrorResponseBody "Vision unavailable"
// @Security BearerAuth
// @Router /vision/analyze [post]
func (h *ScanHandler) Analyze(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		HandleError(c, domain.ErrNoImage)
		return
	}
	defer func() { _ = file.Close() }()

	out, err := h.scanService.Analyze(c.Request.Context(), service.AnalyzeInput{
		UserID:   userID,
		Image:    file,
		Filename: header.Filename,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// List handles GET /api/v1/scans
// @Summary Scan history
// @Tags vision
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]service.ScanWithURL,meta=PagMeta}
// @Security BearerAuth
// @Router /scans [get]
func (h *ScanHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	scans, total, err := h.scanService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, scans, PagMeta{Total: total, Offset: offset, Limit: limit})
}
