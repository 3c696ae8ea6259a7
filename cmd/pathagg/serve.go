package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/pathhierarchy/pkg/adapters/memory"
	httpAdapter "github.com/aretw0/pathhierarchy/pkg/adapters/http"
	"github.com/aretw0/pathhierarchy/pkg/adapters/redis"
	"github.com/aretw0/pathhierarchy/pkg/observability"
	"github.com/aretw0/pathhierarchy/pkg/persistence/middleware"
	"github.com/aretw0/pathhierarchy/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves request normalization and the config cache over HTTP, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		prefix, _ := cmd.Flags().GetString("redis-prefix")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		store, closeStore, err := openStore(cmd.Context(), redisAddr, prefix, ttl)
		if err != nil {
			return err
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)
		store = wrapStore(store, metrics, redisAddr != "" && ttl == 0)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: newMux(store, metrics, reg),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting pathagg server", "addr", srv.Addr, "redis", redisAddr != "")
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("pathagg server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for a shared config cache (memory when empty)")
	serveCmd.Flags().String("redis-prefix", redis.DefaultPrefix, "Key prefix for the Redis cache")
	serveCmd.Flags().Duration("ttl", 0, "Expiration of cached configs (0 keeps them)")
}

// openStore returns the Redis store when addr is set, the memory store otherwise.
func openStore(ctx context.Context, addr, prefix string, ttl time.Duration) (ports.ConfigStore, func(), error) {
	if addr == "" {
		return memory.NewStore(), func() {}, nil
	}

	store := redis.New(addr, "", 0, redis.WithPrefix(prefix), redis.WithTTL(ttl))
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing redis store", "error", err)
		}
	}, nil
}

// wrapStore instruments store and, for a remote store whose entries never
// expire, puts a local near cache in front of it.
func wrapStore(store ports.ConfigStore, metrics *observability.Metrics, nearCache bool) ports.ConfigStore {
	mws := []middleware.Middleware{middleware.NewInstrumentationMiddleware(metrics, logger)}
	if nearCache {
		mws = append(mws, middleware.NewNearCacheMiddleware(memory.NewStore()))
	}
	return middleware.Chain(store, mws...)
}

func newMux(store ports.ConfigStore, metrics *observability.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Mount("/", httpAdapter.NewHandler(
		httpAdapter.WithStore(store),
		httpAdapter.WithMetrics(metrics),
		httpAdapter.WithLogger(logger),
	))
	return r
}
