// Package docs mounts the API documentation routes: the spec document and,
// optionally, a Swagger UI page that renders it.
package docs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	NameSpec = "api.swagger"
	NameUI   = "api.docs"
)

// Config controls which docs routes exist. Empty strings mean "not configured".
type Config struct {
	Prefix     string
	SpecPath   string
	UIPath     string
	Middleware string
}

// SpecURL is the resolved path of the spec route, or "" when it is disabled.
func (c Config) SpecURL() string {
	if c.SpecPath == "" {
		return ""
	}
	return c.Prefix + c.SpecPath
}

type RouteEntry struct {
	Method  string
	Path    string
	Name    string
	Handler gin.HandlerFunc
}

// Registrar is the route table the entries are written into.
type Registrar interface {
	Register(method, path, name string, handler gin.HandlerFunc) error
}

// Routes derives the docs routes from cfg. The UI route needs the spec route,
// so a UI path without a spec path yields nothing.
func Routes(cfg Config, h *Handlers) []RouteEntry {
	if cfg.SpecPath == "" {
		return nil
	}
	routes := []RouteEntry{{
		Method:  http.MethodGet,
		Path:    cfg.Prefix + cfg.SpecPath,
		Name:    NameSpec,
		Handler: h.ServeSpec,
	}}
	if cfg.UIPath != "" {
		routes = append(routes, RouteEntry{
			Method:  http.MethodGet,
			Path:    cfg.Prefix + cfg.UIPath,
			Name:    NameUI,
			Handler: h.ServeUI,
		})
	}
	return routes
}

// Mount registers Routes(cfg, h) with r in order. The first registrar error is
// returned as is, together with the entries registered before it.
func Mount(cfg Config, r Registrar, h *Handlers) ([]RouteEntry, error) {
	routes := Routes(cfg, h)
	mounted := make([]RouteEntry, 0, len(routes))
	for _, route := range routes {
		if err := r.Register(route.Method, route.Path, route.Name, route.Handler); err != nil {
			return mounted, err
		}
		mounted = append(mounted, route)
	}
	return mounted, nil
}
