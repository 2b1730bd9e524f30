package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"pantrify/internal/handler"
	"pantrify/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newContext builds a test context. A non-nil userID is stored the way
// AuthMiddleware would store it.
func newContext(method, target string, body io.Reader, userID *uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, body)
	if userID != nil {
		c.Set(middleware.ContextKeyUserID, *userID)
		c.Set(middleware.ContextKeyRole, "user")
	}
	return c, w
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func setJSON(c *gin.Context) {
	c.Request.Header.Set("Content-Type", "application/json")
}


func ginParam(key, value string) gin.Param {
	return gin.Param{Key: key, Value: value}
}
