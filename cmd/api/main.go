package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/data-tales/tree-locator/internal/adapters/http"
	"github.com/data-tales/tree-locator/internal/adapters/nominatim"
	"github.com/data-tales/tree-locator/internal/adapters/overpass"
	"github.com/data-tales/tree-locator/internal/core/usecases"
	"github.com/data-tales/tree-locator/internal/pkg/config"
	"github.com/data-tales/tree-locator/internal/pkg/logging"
	"github.com/data-tales/tree-locator/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("tree-locator-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Upstream OSM clients
	upstreamTimeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	geocoder := nominatim.New(cfg.Nominatim.Endpoint, cfg.Upstream.UserAgent, upstreamTimeout)
	trees := overpass.New(cfg.Overpass.Endpoint, cfg.Upstream.UserAgent, upstreamTimeout)

	// Use cases
	locator := usecases.NewLocatorService(geocoder, trees)

	deps := &http.Dependencies{
		Locator:           locator,
		NominatimEndpoint: cfg.Nominatim.Endpoint,
		OverpassEndpoint:  cfg.Overpass.Endpoint,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    256 * 1024, // GraphQL queries only; GET elsewhere
		AppName:      "Tree Locator API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
