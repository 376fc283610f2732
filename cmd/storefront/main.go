package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mtz196822-maker/digistore-araby/internal/backend"
	"github.com/mtz196822-maker/digistore-araby/internal/cart"
	"github.com/mtz196822-maker/digistore-araby/internal/catalog"
	"github.com/mtz196822-maker/digistore-araby/internal/checkout"
	"github.com/mtz196822-maker/digistore-araby/internal/config"
	"github.com/mtz196822-maker/digistore-araby/internal/httpapi"
	"github.com/mtz196822-maker/digistore-araby/internal/kv"
	"github.com/mtz196822-maker/digistore-araby/internal/notify"
	"github.com/mtz196822-maker/digistore-araby/internal/session"
	"github.com/mtz196822-maker/digistore-araby/internal/settings"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open local storage")
	}

	hub := notify.NewHub(logger)
	client := backend.NewClient(cfg.BackendURL, cfg.BackendAnonKey, store, logger)

	cartStore := cart.NewStore(store, hub, logger)
	if err := cartStore.Hydrate(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("starting with an empty cart")
	}

	prefs := settings.NewManager(store, logger)
	prefs.Hydrate(context.Background())

	cache := catalog.New(client, logger)
	sessions := session.NewManager(client, hub, logger)

	startCtx, startCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	g, gctx := errgroup.WithContext(startCtx)
	g.Go(func() error {
		cache.Load(gctx)
		return nil
	})
	g.Go(func() error {
		sessions.Start(context.Background())
		return nil
	})
	_ = g.Wait()
	startCancel()

	orchestrator := checkout.NewOrchestrator(
		client, cartStore, sessions, checkout.OptimisticCompletion{}, hub, logger)

	router := httpapi.NewRouter(httpapi.Handlers{
		Catalog:  httpapi.NewCatalogHandler(cache, client, sessions, cfg.RequestTimeout, logger),
		Cart:     httpapi.NewCartHandler(cartStore, cache),
		Checkout: httpapi.NewCheckoutHandler(orchestrator, cfg.RequestTimeout, logger),
		Auth:     httpapi.NewAuthHandler(client, sessions, cfg.RequestTimeout, logger),
		Settings: httpapi.NewSettingsHandler(prefs, hub),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("storefront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	sessions.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}

// newStore picks Redis when configured, otherwise a file-backed store
// under the data directory.
func newStore(cfg *config.Config) (kv.Store, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return kv.NewRedisStore(client), nil
	}
	return kv.NewFileStore(cfg.DataDir)
}
