package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/apidocs/docsmount/internal/cache"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT" validate:"required,numeric"`
	AdminKey       string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic disabled"`
	MetricsPath    string        `mapstructure:"METRICS_PATH" validate:"omitempty,startswith=/"`

	// Docs routes.
	Prefix       string `mapstructure:"API_PREFIX" validate:"omitempty,startswith=/"`
	SwaggerJSON  string `mapstructure:"API_SWAGGER_JSON_PATH" validate:"omitempty,startswith=/"`
	SwaggerUI    string `mapstructure:"API_SWAGGER_UI_PATH" validate:"omitempty,startswith=/"`
	Middleware   string `mapstructure:"API_MIDDLEWARE" validate:"required"`
	UIAssetsPath string `mapstructure:"API_SWAGGER_UI_ASSETS_PATH" validate:"omitempty,startswith=/"`
	DocsTitle    string `mapstructure:"API_DOCS_TITLE"`

	// Spec generator and artifact cache.
	DocsSource   string `mapstructure:"DOCS_SOURCE" validate:"required"`
	SwagInstance string `mapstructure:"SWAG_INSTANCE"`
	CacheDir     string `mapstructure:"DOCS_CACHE_DIR"`
	CacheKey     string `mapstructure:"DOCS_CACHE_KEY" validate:"required"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
}

var keys = []string{
	"ENV", "PORT", "ADMIN_KEY", "CORS_ALLOWED_ORIGINS", "REQUEST_TIMEOUT", "LOG_LEVEL", "METRICS_PATH",
	"API_PREFIX", "API_SWAGGER_JSON_PATH", "API_SWAGGER_UI_PATH", "API_MIDDLEWARE",
	"API_SWAGGER_UI_ASSETS_PATH", "API_DOCS_TITLE",
	"DOCS_SOURCE", "SWAG_INSTANCE", "DOCS_CACHE_DIR", "DOCS_CACHE_KEY", "DATABASE_URL",
}

func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile reads an optional dotenv file and overlays the process environment.
// Set-but-empty variables are kept, so API_SWAGGER_UI_PATH= turns the UI off.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	// Unmarshal only sees keys viper knows about; AutomaticEnv alone is not enough.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("METRICS_PATH", "/metrics")
	v.SetDefault("API_PREFIX", "")
	v.SetDefault("API_SWAGGER_JSON_PATH", "/docs.json")
	v.SetDefault("API_SWAGGER_UI_PATH", "/docs")
	v.SetDefault("API_MIDDLEWARE", "api")
	v.SetDefault("API_SWAGGER_UI_ASSETS_PATH", "/vendor/swagger-ui")
	v.SetDefault("API_DOCS_TITLE", "API Documentation")
	v.SetDefault("DOCS_SOURCE", "swag")
	v.SetDefault("SWAG_INSTANCE", "swagger")
	v.SetDefault("DOCS_CACHE_DIR", "storage/cache")
	v.SetDefault("DOCS_CACHE_KEY", "api-docs")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cache.ValidKey(cfg.CacheKey); err != nil {
		return Config{}, fmt.Errorf("invalid config: DOCS_CACHE_KEY: %w", err)
	}
	return cfg, nil
}
