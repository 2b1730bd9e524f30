package router

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pantrify/internal/domain"
	"pantrify/internal/handler"
	"pantrify/internal/middleware"
	"pantrify/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Pantry     *handler.PantryHandler
	Suggestion *handler.SuggestionHandler
	Scan       *handler.ScanHandler
	Recipe     *handler.RecipeHandler
	Health     *handler.HealthHandler
}

// Options holds cross-cutting settings for the public routes. A nil
// TrustedProxies makes the socket address the client address.
type Options struct {
	AllowedOrigins  []string
	FrontendURL     string
	Production      bool
	TrustedProxies  []string
	RegisterLimiter *middleware.RateLimiter
	LoginLimiter    *middleware.RateLimiter
	// MaxUploadBytes bounds multipart bodies held in memory.
	MaxUploadBytes int64
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Printf("router.Setup: invalid trusted proxies %v, trusting none: %v", opts.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register",
		middleware.SecureOrigin(opts.FrontendURL, opts.Production),
		middleware.RateLimit(opts.RegisterLimiter),
		h.Auth.Register,
	)
	auth.POST("/login", middleware.RateLimit(opts.LoginLimiter), h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", h.Auth.Me)

	items := protected.Group("/pantry-items")
	items.GET("", h.Pantry.List)
	items.POST("", h.Pantry.Create)
	items.POST("/bulk", h.Pantry.BulkCreate)
	items.GET("/export", h.Pantry.Export)
	items.PATCH("/:id", h.Pantry.Update)
	items.DELETE("/:id", h.Pantry.Delete)

	suggestions := protected.Group("/pantry-suggestions")
	suggestions.GET("", h.Suggestion.List)
	suggestions.POST("", middleware.RequireRole(domain.RoleAdmin), h.Suggestion.Upsert)
	suggestions.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Suggestion.Delete)

	protected.POST("/vision/analyze", h.Scan.Analyze)
	protected.GET("/scans", h.Scan.List)

	recipes := protected.Group("/recipes")
	recipes.GET("", h.Recipe.FindByIngredients)
	recipes.GET("/by-pantry", h.Recipe.FindByPantry)
	recipes.GET("/:id", h.Recipe.Get)

	return r
}
