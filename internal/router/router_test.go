package router_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pantrify/internal/domain"
	"pantrify/internal/handler"
	"pantrify/internal/middleware"
	"pantrify/internal/router"
	"pantrify/internal/service"
	"pantrify/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type deps struct {
	auth        *mocks.MockAuthService
	reg         *mocks.MockRegistrationService
	pantry      *mocks.MockPantryService
	suggestions *mocks.MockSuggestionService
	engine      *gin.Engine
}

func setup(t *testing.T, registerLimit int, trustedProxies ...string) *deps {
	t.Helper()
	d := &deps{
		auth:        new(mocks.MockAuthService),
		reg:         new(mocks.MockRegistrationService),
		pantry:      new(mocks.MockPantryService),
		suggestions: new(mocks.MockSuggestionService),
	}
	d.engine = router.Setup(d.auth, router.Handlers{
		Auth:       handler.NewAuthHandler(d.auth, d.reg),
		Pantry:     handler.NewPantryHandler(d.pantry),
		Suggestion: handler.NewSuggestionHandler(d.suggestions),
		Scan:       handler.NewScanHandler(new(mocks.MockScanService)),
		Recipe:     handler.NewRecipeHandler(new(mocks.MockRecipeService)),
		Health:     handler.NewHealthHandler(okPinger{}),
	}, router.Options{
		AllowedOrigins:  []string{"http://localhost:3000"},
		FrontendURL:     "http://localhost:3000",
		TrustedProxies:  trustedProxies,
		RegisterLimiter: middleware.NewRateLimiter(registerLimit, time.Minute),
		LoginLimiter:    middleware.NewRateLimiter(10, time.Minute),
		MaxUploadBytes:  1 << 20,
	})
	return d
}

func (d *deps) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	d.engine.ServeHTTP(w, req)
	return w
}

func (d *deps) token(role domain.UserRole) (string, uuid.UUID) {
	userID := uuid.New()
	tok := "tok-" + string(role)
	d.auth.On("ValidateToken", tok).Return(&service.Claims{UserID: userID, Email: "cook@pantrify.com", Role: role}, nil)
	return tok, userID
}

func TestHealthEndpoints(t *testing.T) {
	d := setup(t, 5)

	assert.Equal(t, http.StatusOK, d.do(httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusOK, d.do(httptest.NewRequest(http.MethodGet, "/readyz", nil)).Code)
}

func TestRequestIDHeader(t *testing.T) {
	d := setup(t, 5)

	w := d.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	d := setup(t, 5)

	for _, path := range []string{"/api/v1/pantry-items", "/api/v1/scans", "/api/v1/recipes/by-pantry", "/api/v1/auth/me"} {
		w := d.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUnknownRoute(t *testing.T) {
	d := setup(t, 5)

	w := d.do(httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportRouteNotShadowedByID(t *testing.T) {
	d := setup(t, 5)
	tok, userID := d.token(domain.RoleUser)
	d.pantry.On("Export", mock.Anything, userID, domain.ExportFormatCSV, mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pantry-items/export", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := d.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	d.pantry.AssertExpectations(t)
}

func TestSuggestionWritesRequireAdmin(t *testing.T) {
	d := setup(t, 5)
	userTok, _ := d.token(domain.RoleUser)
	adminTok, _ := d.token(domain.RoleAdmin)
	d.suggestions.On("Upsert", mock.Anything, service.UpsertSuggestionInput{Name: "Rice"}).
		Return(&domain.PantrySuggestion{ID: uuid.New(), Name: "Rice"}, nil)

	newReq := func(tok string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pantry-suggestions", bytes.NewBufferString(`{"name":"Rice"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tok)
		return req
	}

	assert.Equal(t, http.StatusForbidden, d.do(newReq(userTok)).Code)
	assert.Equal(t, http.StatusOK, d.do(newReq(adminTok)).Code)
	d.suggestions.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestRegisterRateLimited(t *testing.T) {
	d := setup(t, 2)
	d.reg.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEmail)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			bytes.NewBufferString(`{"email":"a@b.co","password":"Str0ng!pass"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		last = d.do(req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	d.reg.AssertNumberOfCalls(t, "Register", 2)
}

func registerFrom(d *deps, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		bytes.NewBufferString(`{"email":"a@b.co","password":"Str0ng!pass"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	return d.do(req)
}

func TestRegisterRateLimit_RotatingForwardedFor(t *testing.T) {
	d := setup(t, 2)
	d.reg.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEmail)

	registerFrom(d, "203.0.113.1")
	registerFrom(d, "203.0.113.2")
	w := registerFrom(d, "203.0.113.3")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	d.reg.AssertNumberOfCalls(t, "Register", 2)
}

func TestRegisterRateLimit_BehindTrustedProxy(t *testing.T) {
	// httptest requests arrive from 192.0.2.1
	d := setup(t, 1, "192.0.2.1")
	d.reg.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEmail)

	assert.Equal(t, http.StatusConflict, registerFrom(d, "203.0.113.1").Code)
	assert.Equal(t, http.StatusConflict, registerFrom(d, "203.0.113.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, registerFrom(d, "203.0.113.1").Code)
}

func TestRegisterRejectsForeignOrigin(t *testing.T) {
	d := setup(t, 5)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		bytes.NewBufferString(`{"email":"a@b.co","password":"Str0ng!pass"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://evil.example")
	w := d.do(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	d.reg.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestCORSPreflight(t *testing.T) {
	d := setup(t, 5)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/pantry-items", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := d.do(req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
