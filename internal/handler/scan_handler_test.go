package handler_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pantrify/internal/domain"
	"pantrify/internal/handler"
	"pantrify/internal/reconciler"
	"pantrify/internal/service"
	"pantrify/mocks"
)

func multipartImage(t *testing.T, field, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestScanHandler_Analyze(t *testing.T) {
	svc := new(mocks.MockScanService)
	h := handler.NewScanHandler(svc)
	userID := uuid.New()

	svc.On("Analyze", mock.Anything, mock.MatchedBy(func(in service.AnalyzeInput) bool {
		return in.UserID == userID && in.Filename == "shelf.png" && in.Image != nil
	})).Return(&service.AnalyzeOutput{
		ScanID:        uuid.New(),
		DetectedItems: []string{"banana", "apple"},
		Confidence:    reconciler.ConfidenceHigh,
	}, nil)

	body, contentType := multipartImage(t, "image", "shelf.png", []byte("\x89PNG\r\n\x1a\nrest"))
	c, w := newContext(http.MethodPost, "/api/v1/vision/analyze", body, &userID)
	c.Request.Header.Set("Content-Type", contentType)
	h.Analyze(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, []interface{}{"banana", "apple"}, data["detected_items"])
	svc.AssertExpectations(t)
}

func TestScanHandler_Analyze_NoImage(t *testing.T) {
	svc := new(mocks.MockScanService)
	h := handler.NewScanHandler(svc)
	userID := uuid.New()

	body, contentType := multipartImage(t, "photo", "shelf.png", []byte("data"))
	c, w := newContext(http.MethodPost, "/api/v1/vision/analyze", body, &userID)
	c.Request.Header.Set("Content-Type", contentType)
	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_IMAGE", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestScanHandler_Analyze_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"unsupported", domain.ErrUnsupportedFileType, http.StatusBadRequest},
		{"vision down", domain.ErrVisionUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockScanService)
			h := handler.NewScanHandler(svc)
			userID := uuid.New()
			svc.On("Analyze", mock.Anything, mock.Anything).Return(nil, tt.err)

			body, contentType := multipartImage(t, "image", "shelf.png", []byte("data"))
			c, w := newContext(http.MethodPost, "/api/v1/vision/analyze", body, &userID)
			c.Request.Header.Set("Content-Type", contentType)
			h.Analyze(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestScanHandler_List(t *testing.T) {
	svc := new(mocks.MockScanService)
	h := handler.NewScanHandler(svc)
	userID := uuid.New()

	scans := []service.ScanWithURL{{Scan: domain.Scan{ID: uuid.New(), UserID: userID}, ImageURL: "https://s3/link"}}
	svc.On("List", mock.Anything, userID, 0, 20).Return(scans, 1, nil)

	c, w := newContext(http.MethodGet, "/api/v1/scans", nil, &userID)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Contains(t, w.Body.String(), "https://s3/link")
}
