package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Prefix != "" {
		t.Fatalf("expected empty prefix, got %q", cfg.Prefix)
	}
	if cfg.SwaggerJSON != "/docs.json" || cfg.SwaggerUI != "/docs" {
		t.Fatalf("unexpected docs paths: %q %q", cfg.SwaggerJSON, cfg.SwaggerUI)
	}
	if cfg.Middleware != "api" {
		t.Fatalf("expected api middleware, got %q", cfg.Middleware)
	}
	if cfg.CacheKey != "api-docs" {
		t.Fatalf("unexpected cache key: %q", cfg.CacheKey)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PREFIX", "/api")
	t.Setenv("API_SWAGGER_UI_PATH", "")
	t.Setenv("API_MIDDLEWARE", "admin")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Prefix != "/api" {
		t.Fatalf("expected /api prefix, got %q", cfg.Prefix)
	}
	if cfg.SwaggerUI != "" {
		t.Fatalf("expected ui path disabled by empty env, got %q", cfg.SwaggerUI)
	}
	if cfg.Middleware != "admin" {
		t.Fatalf("expected admin middleware, got %q", cfg.Middleware)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_SWAGGER_JSON_PATH=/openapi.json\nDOCS_SOURCE=file:openapi.yaml\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SwaggerJSON != "/openapi.json" {
		t.Fatalf("unexpected json path: %q", cfg.SwaggerJSON)
	}
	if cfg.DocsSource != "file:openapi.yaml" {
		t.Fatalf("unexpected docs source: %q", cfg.DocsSource)
	}
}

func TestLoadRejectsRelativePaths(t *testing.T) {
	t.Setenv("API_SWAGGER_JSON_PATH", "docs.json")
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected validation error for path without leading slash")
	}
}

func TestLoadRejectsUnstorableCacheKey(t *testing.T) {
	for _, key := range []string{"docs/v1", "../api-docs", ".hidden"} {
		t.Setenv("DOCS_CACHE_KEY", key)
		if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
			t.Fatalf("expected cache key %q to be rejected at load", key)
		}
	}
}
