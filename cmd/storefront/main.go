package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/vasstra/vasstra-storefront/api/handlers"
	"github.com/vasstra/vasstra-storefront/api/routes"
	"github.com/vasstra/vasstra-storefront/internal/cart"
	"github.com/vasstra/vasstra-storefront/internal/notify"
	"github.com/vasstra/vasstra-storefront/internal/orders"
	"github.com/vasstra/vasstra-storefront/internal/products"
	"github.com/vasstra/vasstra-storefront/internal/session"
	"github.com/vasstra/vasstra-storefront/internal/wishlist"
	"github.com/vasstra/vasstra-storefront/pkg/config"
	"github.com/vasstra/vasstra-storefront/pkg/db"
	"github.com/vasstra/vasstra-storefront/pkg/kv"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
	"github.com/vasstra/vasstra-storefront/pkg/metrics"
	"github.com/vasstra/vasstra-storefront/pkg/migrate"
	"github.com/vasstra/vasstra-storefront/pkg/storeapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	storeMetrics := metrics.NewStoreMetrics(registry)

	snapshots, checks, closeBackends, err := buildSnapshotStore(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap snapshot store", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeBackends(); err != nil {
			logg.Error(context.Background(), "error closing snapshot backends", err)
		}
	}()

	client := storeapi.NewClient(
		storeapi.WithBaseURL(cfg.Backend.BaseURL),
		storeapi.WithTimeout(cfg.Backend.Timeout),
		storeapi.WithMetrics(storeMetrics),
	)
	notifier := notify.NewLog(logg)

	sessionStore, err := session.NewStore(ctx, snapshots, logg)
	if err != nil {
		logg.Error(ctx, "failed to build session store", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(ctx, snapshots, notifier, logg, storeMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build cart store", err)
		os.Exit(1)
	}

	wishlistStore, err := wishlist.NewStore(ctx, snapshots, notifier, logg, storeMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build wishlist store", err)
		os.Exit(1)
	}

	orderStore, err := orders.NewStore(client, sessionStore, logg, storeMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build order store", err)
		os.Exit(1)
	}
	orderStore.BindSession(ctx, sessionStore)
	if err := orderStore.Refresh(ctx); err != nil {
		logg.Error(ctx, "initial order refresh failed", err)
	}

	productSvc, err := products.NewService(client, cfg.Backend.SearchTimeout, logg)
	if err != nil {
		logg.Error(ctx, "failed to build product service", err)
		os.Exit(1)
	}

	recentlyViewed, err := products.NewRecentlyViewed(ctx, snapshots, cfg.Backend.RecentViewedN, logg)
	if err != nil {
		logg.Error(ctx, "failed to build recently viewed store", err)
		os.Exit(1)
	}

	catalog := productSvc.List(ctx, cfg.Backend.ProductFetchN)
	logg.Info(logg.WithFields(ctx, map[string]any{
		"env":             cfg.App.Env,
		"kv_backend":      cfg.KV.Backend,
		"catalog":         len(catalog),
		"cart_lines":      cartStore.TotalItems(),
		"wishlist_items":  wishlistStore.TotalItems(),
		"recently_viewed": len(recentlyViewed.Items()),
		"orders":          len(orderStore.Orders()),
	}), "storefront state hydrated")

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: routes.NewRouter(cfg, logg, registry, checks),
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "starting ops server")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "ops server stopped unexpectedly", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "ops server shutdown failed", err)
	}
}

// buildSnapshotStore selects the configured persistence backend and
// returns the health checks and close hook that go with it.
func buildSnapshotStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Store, map[string]handlers.Pinger, func() error, error) {
	checks := map[string]handlers.Pinger{}
	noop := func() error { return nil }

	switch cfg.KV.Backend {
	case config.KVBackendMemory:
		return kv.NewMemory(), checks, noop, nil

	case config.KVBackendRedis:
		redisStore, err := kv.NewRedis(ctx, cfg.Redis, cfg.KV.Namespace)
		if err != nil {
			return nil, nil, nil, err
		}
		checks["redis"] = redisStore
		return redisStore, checks, redisStore.Close, nil

	case config.KVBackendSQL:
		dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			return nil, nil, nil, multierr.Append(err, dbClient.Close())
		}
		sqlStore, err := kv.NewSQL(dbClient.DB())
		if err != nil {
			return nil, nil, nil, multierr.Append(err, dbClient.Close())
		}
		checks["db"] = dbClient
		return sqlStore, checks, dbClient.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown kv backend %q", cfg.KV.Backend)
	}
}
