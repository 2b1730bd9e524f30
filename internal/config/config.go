package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pantrify/internal/reconciler"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Vision     VisionConfig
	Recipes    RecipesConfig
	Reconciler ReconcilerConfig
	RateLimit  RateLimitConfig
	Security   SecurityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in the production environment.
func (s *ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds object storage settings for archived scan images.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	// PresignExpiry is the lifetime of scan image links, in seconds.
	PresignExpiry int64 `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// VisionConfig holds settings for the image annotation provider.
type VisionConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MaxImageMB  int64  `mapstructure:"max_image_mb"`
	// StoreImages archives every scanned image to S3 when set.
	StoreImages bool `mapstructure:"store_images"`
}

// MaxImageBytes returns the upload limit in bytes.
func (v *VisionConfig) MaxImageBytes() int64 {
	return v.MaxImageMB << 20
}

// RecipesConfig holds settings for the recipe provider.
type RecipesConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	TimeoutSecs   int           `mapstructure:"timeout_secs"`
	DefaultNumber int           `mapstructure:"default_number"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

// ReconcilerConfig holds the label reconciler thresholds.
type ReconcilerConfig struct {
	LabelFloor         float64 `mapstructure:"label_floor"`
	HeuristicThreshold float64 `mapstructure:"heuristic_threshold"`
	MaxItems           int     `mapstructure:"max_items"`
	ExclusionEnabled   bool    `mapstructure:"exclusion_enabled"`
	// VocabularyPath overrides the built-in vocabulary with a YAML file.
	VocabularyPath string `mapstructure:"vocabulary_path"`
}

// ToReconcilerConfig converts the settings into a reconciler.Config.
func (r *ReconcilerConfig) ToReconcilerConfig() reconciler.Config {
	return reconciler.Config{
		LabelFloor:         r.LabelFloor,
		HeuristicThreshold: r.HeuristicThreshold,
		MaxItems:           r.MaxItems,
		ExclusionEnabled:   r.ExclusionEnabled,
	}
}

// RateLimitConfig holds per-IP limits for the public auth endpoints.
type RateLimitConfig struct {
	RegisterLimit int           `mapstructure:"register_limit"`
	LoginLimit    int           `mapstructure:"login_limit"`
	Window        time.Duration `mapstructure:"window"`
}

// SecurityConfig holds request origin settings.
type SecurityConfig struct {
	FrontendURL string `mapstructure:"frontend_url"`
	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the socket address is always the client address.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Load reads configuration from environment variables with the PANTRIFY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PANTRIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "pantrify")
	v.SetDefault("db.password", "pantrify_secret")
	v.SetDefault("db.name", "pantrify_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "pantrify")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "pantrify-scans")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Vision defaults
	v.SetDefault("vision.provider", "gcv")
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.endpoint", "https://vision.googleapis.com")
	v.SetDefault("vision.timeout_secs", 30)
	v.SetDefault("vision.max_image_mb", 10)
	v.SetDefault("vision.store_images", false)

	// Recipes defaults
	v.SetDefault("recipes.api_key", "")
	v.SetDefault("recipes.base_url", "https://api.spoonacular.com")
	v.SetDefault("recipes.timeout_secs", 15)
	v.SetDefault("recipes.default_number", 12)
	v.SetDefault("recipes.cache_ttl", "1h")

	// Reconciler defaults
	v.SetDefault("reconciler.label_floor", reconciler.DefaultLabelFloor)
	v.SetDefault("reconciler.heuristic_threshold", reconciler.DefaultHeuristicThreshold)
	v.SetDefault("reconciler.max_items", reconciler.DefaultMaxItems)
	v.SetDefault("reconciler.exclusion_enabled", true)
	v.SetDefault("reconciler.vocabulary_path", "")

	// Rate limit defaults
	v.SetDefault("ratelimit.register_limit", 5)
	v.SetDefault("ratelimit.login_limit", 10)
	v.SetDefault("ratelimit.window", "15m")

	v.SetDefault("security.frontend_url", "http://localhost:3000")
	v.SetDefault("security.trusted_proxies", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "PANTRIFY_SERVER_PORT",
		"server.read_timeout":            "PANTRIFY_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "PANTRIFY_SERVER_WRITE_TIMEOUT",
		"server.environment":             "PANTRIFY_SERVER_ENVIRONMENT",
		"db.host":                        "PANTRIFY_DB_HOST",
		"db.port":                        "PANTRIFY_DB_PORT",
		"db.user":                        "PANTRIFY_DB_USER",
		"db.password":                    "PANTRIFY_DB_PASSWORD",
		"db.name":                        "PANTRIFY_DB_NAME",
		"db.sslmode":                     "PANTRIFY_DB_SSLMODE",
		"db.max_open":                    "PANTRIFY_DB_MAX_OPEN",
		"db.max_idle":                    "PANTRIFY_DB_MAX_IDLE",
		"jwt.secret":                     "PANTRIFY_JWT_SECRET",
		"jwt.access_expiry":              "PANTRIFY_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "PANTRIFY_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "PANTRIFY_JWT_ISSUER",
		"s3.region":                      "PANTRIFY_S3_REGION",
		"s3.bucket":                      "PANTRIFY_S3_BUCKET",
		"s3.endpoint":                    "PANTRIFY_S3_ENDPOINT",
		"s3.access_key":                  "PANTRIFY_S3_ACCESS_KEY",
		"s3.secret_key":                  "PANTRIFY_S3_SECRET_KEY",
		"s3.presign_expiry":              "PANTRIFY_S3_PRESIGN_EXPIRY",
		"log.level":                      "PANTRIFY_LOG_LEVEL",
		"log.format":                     "PANTRIFY_LOG_FORMAT",
		"cors.allowed_origins":           "PANTRIFY_CORS_ALLOWED_ORIGINS",
		"vision.provider":                "PANTRIFY_VISION_PROVIDER",
		"vision.api_key":                 "PANTRIFY_VISION_API_KEY",
		"vision.endpoint":                "PANTRIFY_VISION_ENDPOINT",
		"vision.timeout_secs":            "PANTRIFY_VISION_TIMEOUT_SECS",
		"vision.max_image_mb":            "PANTRIFY_VISION_MAX_IMAGE_MB",
		"vision.store_images":            "PANTRIFY_VISION_STORE_IMAGES",
		"recipes.api_key":                "PANTRIFY_RECIPES_API_KEY",
		"recipes.base_url":               "PANTRIFY_RECIPES_BASE_URL",
		"recipes.timeout_secs":           "PANTRIFY_RECIPES_TIMEOUT_SECS",
		"recipes.default_number":         "PANTRIFY_RECIPES_DEFAULT_NUMBER",
		"recipes.cache_ttl":              "PANTRIFY_RECIPES_CACHE_TTL",
		"reconciler.label_floor":         "PANTRIFY_RECONCILER_LABEL_FLOOR",
		"reconciler.heuristic_threshold": "PANTRIFY_RECONCILER_HEURISTIC_THRESHOLD",
		"reconciler.max_items":           "PANTRIFY_RECONCILER_MAX_ITEMS",
		"reconciler.exclusion_enabled":   "PANTRIFY_RECONCILER_EXCLUSION_ENABLED",
		"reconciler.vocabulary_path":     "PANTRIFY_RECONCILER_VOCABULARY_PATH",
		"ratelimit.register_limit":       "PANTRIFY_RATELIMIT_REGISTER_LIMIT",
		"ratelimit.login_limit":          "PANTRIFY_RATELIMIT_LOGIN_LIMIT",
		"ratelimit.window":               "PANTRIFY_RATELIMIT_WINDOW",
		"security.frontend_url":          "PANTRIFY_SECURITY_FRONTEND_URL",
		"security.trusted_proxies":       "PANTRIFY_SECURITY_TRUSTED_PROXIES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if PANTRIFY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PANTRIFY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),

		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Vision = VisionConfig{
		Provider:    v.GetString("vision.provider"),
		APIKey:      v.GetString("vision.api_key"),
		Endpoint:    v.GetString("vision.endpoint"),
		TimeoutSecs: v.GetInt("vision.timeout_secs"),
		MaxImageMB:  v.GetInt64("vision.max_image_mb"),
		StoreImages: v.GetBool("vision.store_images"),
	}
	cfg.Recipes = RecipesConfig{
		APIKey:        v.GetString("recipes.api_key"),
		BaseURL:       v.GetString("recipes.base_url"),
		TimeoutSecs:   v.GetInt("recipes.timeout_secs"),
		DefaultNumber: v.GetInt("recipes.default_number"),
		CacheTTL:      v.GetDuration("recipes.cache_ttl"),
	}
	cfg.Reconciler = ReconcilerConfig{
		LabelFloor:         v.GetFloat64("reconciler.label_floor"),
		HeuristicThreshold: v.GetFloat64("reconciler.heuristic_threshold"),
		MaxItems:           v.GetInt("reconciler.max_items"),
		ExclusionEnabled:   v.GetBool("reconciler.exclusion_enabled"),
		VocabularyPath:     v.GetString("reconciler.vocabulary_path"),
	}
	cfg.RateLimit = RateLimitConfig{
		RegisterLimit: v.GetInt("ratelimit.register_limit"),
		LoginLimit:    v.GetInt("ratelimit.login_limit"),
		Window:        v.GetDuration("ratelimit.window"),
	}
	cfg.Security = SecurityConfig{
		FrontendURL:    v.GetString("security.frontend_url"),
		TrustedProxies: splitList(v.GetString("security.trusted_proxies")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	r := c.Reconciler
	if r.LabelFloor < 0 || r.LabelFloor >= 1 {
		return fmt.Errorf("config: reconciler.label_floor must be in [0,1), got %v", r.LabelFloor)
	}
	if r.HeuristicThreshold < r.LabelFloor {
		return fmt.Errorf("config: reconciler.heuristic_threshold (%v) is below label_floor (%v)",
			r.HeuristicThreshold, r.LabelFloor)
	}
	if r.MaxItems <= 0 {
		return fmt.Errorf("config: reconciler.max_items must be positive, got %d", r.MaxItems)
	}
	if c.Vision.MaxImageMB <= 0 {
		return fmt.Errorf("config: vision.max_image_mb must be positive, got %d", c.Vision.MaxImageMB)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("config: ratelimit.window must be positive, got %s", c.RateLimit.Window)
	}
	for _, p := range c.Security.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("config: security.trusted_proxies entry %q is not an IP or CIDR", p)
			}
		}
	}
	return nil
}

// splitList parses a comma-separated string, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
