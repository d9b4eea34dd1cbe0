package httpapi

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/apidocs/docsmount/internal/cache"
	"github.com/apidocs/docsmount/internal/config"
	"github.com/apidocs/docsmount/internal/docs"
	"github.com/apidocs/docsmount/internal/http/handlers"
	"github.com/apidocs/docsmount/internal/http/middleware"
	"github.com/apidocs/docsmount/internal/metrics"
	"github.com/apidocs/docsmount/internal/spec"
)

const NameUIAssets = "api.docs.assets"

func DocsConfig(cfg config.Config) docs.Config {
	return docs.Config{
		Prefix:     cfg.Prefix,
		SpecPath:   cfg.SwaggerJSON,
		UIPath:     cfg.SwaggerUI,
		Middleware: cfg.Middleware,
	}
}

// Router assembles the engine and mounts the docs routes. m may be nil.
func Router(cfg config.Config, store cache.Store, source spec.Source, m *metrics.DocsMetrics, logger zerolog.Logger) (*gin.Engine, error) {
	docsCfg := DocsConfig(cfg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	if m != nil {
		r.Use(m.Instrument(docsCfg.SpecURL()))
	}

	h := &handlers.Handler{Store: store, Logger: logger}
	r.GET("/healthz", h.Healthz)
	if m != nil && cfg.MetricsPath != "" {
		r.GET(cfg.MetricsPath, gin.WrapH(m.Handler()))
	}

	groups, err := middleware.DefaultGroups(middleware.GroupOptions{
		CORSAllowed: cfg.CORSAllowed,
		AdminKey:    cfg.AdminKey,
	})
	if err != nil {
		return nil, err
	}
	mw, err := groups.Lookup(docsCfg.Middleware)
	if err != nil {
		return nil, err
	}
	reg := docs.NewGinRegistrar(r.Group("", mw...))

	ui := docs.UIOptions{Title: cfg.DocsTitle}
	if cfg.UIAssetsPath != "" {
		ui.AssetsURL = cfg.Prefix + cfg.UIAssetsPath
	}
	dh, err := docs.NewHandlers(docsCfg, source, ui)
	if err != nil {
		return nil, err
	}
	mounted, err := docs.Mount(docsCfg, reg, dh)
	if err != nil {
		return nil, err
	}
	if len(mounted) == 0 {
		logger.Info().Msg("api docs disabled")
		return r, nil
	}
	for _, route := range mounted {
		logger.Info().Str("name", route.Name).Str("method", route.Method).Str("path", route.Path).Msg("api docs route mounted")
	}

	if _, ok := reg.Lookup(docs.NameUI); ok && ui.AssetsURL != "" {
		assets := staticAssets(ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(docsCfg.SpecURL())))
		if err := reg.Register(http.MethodGet, ui.AssetsURL+"/*any", NameUIAssets, assets); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// staticAssets limits the vendored UI handler to its static files. gin-swagger
// also renders its own index.html and serves the swag "swagger" instance as
// doc.json, which would bypass the configured docs routes.
func staticAssets(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch path.Base(c.Param("any")) {
		case "index.html", "doc.json", "/", ".":
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		next(c)
	}
}
