package docs

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

var ErrDuplicateRoute = errors.New("duplicate route")

// GinRegistrar writes routes into a gin router group and keeps a named route
// table. gin panics on a repeated method and path; GinRegistrar reports it,
// and a repeated name, as ErrDuplicateRoute instead.
type GinRegistrar struct {
	routes gin.IRoutes
	names  map[string]RouteEntry
	paths  map[string]string
	order  []string
}

func NewGinRegistrar(routes gin.IRoutes) *GinRegistrar {
	return &GinRegistrar{
		routes: routes,
		names:  map[string]RouteEntry{},
		paths:  map[string]string{},
	}
}

func (g *GinRegistrar) Register(method, path, name string, handler gin.HandlerFunc) error {
	if prev, ok := g.names[name]; ok {
		return fmt.Errorf("%w: name %q already used by %s %s", ErrDuplicateRoute, name, prev.Method, prev.Path)
	}
	key := method + " " + path
	if prev, ok := g.paths[key]; ok {
		return fmt.Errorf("%w: %s already registered as %q", ErrDuplicateRoute, key, prev)
	}
	g.routes.Handle(method, path, handler)
	g.names[name] = RouteEntry{Method: method, Path: path, Name: name, Handler: handler}
	g.paths[key] = name
	g.order = append(g.order, name)
	return nil
}

// Lookup returns the route registered under name.
func (g *GinRegistrar) Lookup(name string) (RouteEntry, bool) {
	r, ok := g.names[name]
	return r, ok
}

// Table lists the registered routes in registration order.
func (g *GinRegistrar) Table() []RouteEntry {
	out := make([]RouteEntry, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.names[name])
	}
	return out
}
