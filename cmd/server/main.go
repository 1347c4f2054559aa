// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/booking/locations"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/booking/search"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/config"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/observability"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/tools"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("info", "json").Error("failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger).WithFields(map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	matrixClient := matrix.NewClient(cfg.Matrix, log)

	var organization matrix.OrganizationService = matrixClient
	if cfg.Cache.Enabled {
		cached := matrix.NewCachedOrganizationService(matrixClient, cfg.Cache, log)
		defer cached.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cached.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, serving categories uncached", map[string]interface{}{
				"address": cfg.Cache.Address,
				"error":   err.Error(),
			})
		} else {
			organization = cached
		}
		cancel()
	}

	searchService := search.NewService(
		matrixClient,
		matrixClient,
		cfg.Search.DefaultMaxResults,
		cfg.Search.MaxMaxResults,
		log,
	)
	resolver := locations.NewResolver(matrixClient, cfg.Matrix.PreferredLocation, log)

	registry := tools.NewRegistry()
	handlers := tools.NewHandlers(
		searchService,
		resolver,
		matrixClient,
		matrixClient,
		matrixClient,
		organization,
		cfg.App.Version,
		log,
	)
	handlers.RegisterAll(registry)

	mux := http.NewServeMux()
	mux.Handle("/mcp/", tools.NewServer(registry, obs, log))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	server := &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("server listening", map[string]interface{}{
			"address": cfg.Server.ListenAddress,
			"tools":   len(registry.List()),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
