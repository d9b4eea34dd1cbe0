package middleware

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Groups maps a middleware tag to the handlers applied to routes mounted
// under it.
type Groups map[string][]gin.HandlerFunc

type GroupOptions struct {
	CORSAllowed string
	AdminKey    string
}

// DefaultGroups builds the "api", "admin" and "web" groups.
func DefaultGroups(opts GroupOptions) (Groups, error) {
	corsMW, err := CORS(opts.CORSAllowed)
	if err != nil {
		return nil, err
	}
	api := []gin.HandlerFunc{corsMW}
	return Groups{
		"api":   api,
		"admin": append(append([]gin.HandlerFunc{}, api...), AdminKey(opts.AdminKey)),
		"web":   {NoStore()},
	}, nil
}

func (g Groups) Lookup(tag string) ([]gin.HandlerFunc, error) {
	handlers, ok := g[tag]
	if !ok {
		names := make([]string, 0, len(g))
		for name := range g {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown middleware group %q (have %s)", tag, strings.Join(names, ", "))
	}
	return handlers, nil
}

// CORS builds the cross-origin middleware. allowed is "*" or a comma
// separated list of origins with scheme.
func CORS(allowed string) (gin.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if allowed == "" || allowed == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = strings.Split(allowed, ",")
		for i := range cfg.AllowOrigins {
			cfg.AllowOrigins[i] = strings.TrimSpace(cfg.AllowOrigins[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS %q: %w", allowed, err)
	}
	return cors.New(cfg), nil
}

// NoStore keeps browsers and proxies from caching documentation responses.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
