package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	_ "github.com/apidocs/docsmount/docs"
	"github.com/apidocs/docsmount/internal/cache"
	"github.com/apidocs/docsmount/internal/config"
	"github.com/apidocs/docsmount/internal/console"
	httpapi "github.com/apidocs/docsmount/internal/http"
	"github.com/apidocs/docsmount/internal/metrics"
	"github.com/apidocs/docsmount/internal/spec"
)

var envFile string

func main() {
	root := &cobra.Command{
		Use:          "docsmount",
		Short:        "Serve API documentation and manage its cache",
		SilenceUsage: true,
		RunE:         serve,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE:  serve,
		},
		console.NewCacheCommand(loadConsole),
		console.NewClearCommand(loadConsole),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return log.Level(level).With().Str("service", "docsmount").Logger()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx := context.Background()
	store, err := cache.Open(ctx, cfg.DatabaseURL, cfg.CacheDir)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open docs cache")
		return err
	}
	defer store.Close()

	source, err := spec.FromConfig(cfg.DocsSource, cfg.SwagInstance, store, cfg.CacheKey)
	if err != nil {
		return err
	}

	var m *metrics.DocsMetrics
	if cfg.MetricsPath != "" {
		m = metrics.NewDocsMetrics(logger)
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := httpapi.Router(cfg, store, source, m, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to mount routes")
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
	return nil
}

func loadConsole(ctx context.Context) (console.Deps, func(), error) {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return console.Deps{}, nil, err
	}
	logger := newLogger(cfg)

	gen, err := spec.Generator(cfg.DocsSource, cfg.SwagInstance)
	if err != nil {
		return console.Deps{}, nil, err
	}
	store, err := cache.Open(ctx, cfg.DatabaseURL, cfg.CacheDir)
	if err != nil {
		return console.Deps{}, nil, err
	}
	return console.Deps{
		Generator: gen,
		Store:     store,
		Key:       cfg.CacheKey,
		Logger:    logger,
	}, store.Close, nil
}
