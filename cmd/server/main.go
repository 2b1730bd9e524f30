// @title           Pantrify API
// @version         1.0
// @description     Pantry tracking, photo scanning and recipe suggestions.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "pantrify/docs"
	"pantrify/internal/annotator"
	"pantrify/internal/annotator/gcv"
	"pantrify/internal/annotator/noop"
	"pantrify/internal/config"
	"pantrify/internal/handler"
	"pantrify/internal/middleware"
	"pantrify/internal/port"
	"pantrify/internal/recipes/spoonacular"
	"pantrify/internal/reconciler"
	"pantrify/internal/repository/postgres"
	"pantrify/internal/router"
	"pantrify/internal/service"
	s3storage "pantrify/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if !strings.EqualFold(os.Getenv("PANTRIFY_SERVER_ENVIRONMENT"), "production") {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("warning: could not read .env: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	itemRepo := postgres.NewPantryItemRepo(db)
	suggestionRepo := postgres.NewSuggestionRepo(db)
	scanRepo := postgres.NewScanRepo(db)

	// Initialize vision provider
	annotator.RegisterProvider("gcv", gcv.Factory)
	annotator.RegisterProvider("noop", noop.Factory)
	imageAnnotator, err := annotator.NewAnnotator(&cfg.Vision)
	if err != nil {
		return fmt.Errorf("failed to initialize vision provider: %w", err)
	}
	log.Printf("Vision provider: %s", cfg.Vision.Provider)

	var vocab *reconciler.Vocabulary
	if cfg.Reconciler.VocabularyPath != "" {
		vocab, err = reconciler.LoadVocabulary(cfg.Reconciler.VocabularyPath)
		if err != nil {
			return fmt.Errorf("failed to load vocabulary: %w", err)
		}
		log.Printf("Loaded vocabulary from %s", cfg.Reconciler.VocabularyPath)
	}
	rec := reconciler.New(cfg.Reconciler.ToReconcilerConfig(), vocab)

	// Initialize storage (only when scan images are archived)
	var imageStore port.ObjectStorage
	if cfg.Vision.StoreImages {
		store, serr := s3storage.NewImageStore(ctx, &cfg.S3)
		if serr != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", serr)
		}
		imageStore = store
	}

	recipeProvider := spoonacular.NewClient(&cfg.Recipes)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	registrationSvc := service.NewRegistrationService(userRepo, authSvc)
	pantrySvc := service.NewPantryService(itemRepo)
	suggestionSvc := service.NewSuggestionService(suggestionRepo)
	scanSvc := service.NewScanService(imageAnnotator, rec, scanRepo, imageStore, service.ScanConfig{
		MaxImageBytes: cfg.Vision.MaxImageBytes(),
		StoreImages:   cfg.Vision.StoreImages,
		Bucket:        cfg.S3.Bucket,
		PresignExpiry: cfg.S3.PresignExpiry,
	})
	recipeSvc := service.NewRecipeService(recipeProvider, pantrySvc, service.RecipeConfig{
		DefaultNumber: cfg.Recipes.DefaultNumber,
		CacheTTL:      cfg.Recipes.CacheTTL,
	})

	// Rate limiters for the public auth endpoints
	registerLimiter := middleware.NewRateLimiter(cfg.RateLimit.RegisterLimit, cfg.RateLimit.Window)
	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginLimit, cfg.RateLimit.Window)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, registrationSvc),
		Pantry:     handler.NewPantryHandler(pantrySvc),
		Suggestion: handler.NewSuggestionHandler(suggestionSvc),
		Scan:       handler.NewScanHandler(scanSvc),
		Recipe:     handler.NewRecipeHandler(recipeSvc),
		Health:     handler.NewHealthHandler(postgres.NewPinger(db)),
	}

	// Setup router
	r := router.Setup(authSvc, handlers, router.Options{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		FrontendURL:     cfg.Security.FrontendURL,
		Production:      cfg.Server.IsProduction(),
		TrustedProxies:  cfg.Security.TrustedProxies,
		RegisterLimiter: registerLimiter,
		LoginLimiter:    loginLimiter,
		MaxUploadBytes:  cfg.Vision.MaxImageBytes(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
