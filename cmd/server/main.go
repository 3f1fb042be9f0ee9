package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcp-gateway/internal/config"
	"mcp-gateway/internal/database"
	"mcp-gateway/internal/handlers"
	"mcp-gateway/internal/logging"
	"mcp-gateway/internal/middleware"
	"mcp-gateway/internal/router"
	"mcp-gateway/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	logger := logging.NewLogger(logging.Options{Level: cfg.LogLevel, Component: "gateway"})
	slog.SetDefault(logger)
	log.Println("🚀 Starting MCP gateway...")
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Rate Limiter ────
	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMin > 0 {
		if cfg.RedisURL != "" {
			redisClient, err := database.NewRedisClient(cfg.RedisURL)
			if err != nil {
				log.Fatalf("✗ Redis connection failed: %v", err)
			}
			defer redisClient.Close()
			limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimitPerMin, time.Minute)
			log.Printf("✓ Rate limiter on Redis (%d req/min per IP)", cfg.RateLimitPerMin)
		} else {
			limiter = middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
			log.Printf("✓ Rate limiter in memory (%d req/min per IP)", cfg.RateLimitPerMin)
		}
	}

	if limiter != nil {
		defer limiter.Close()
	}

	// ──── Step 3: Initialize Shim Client ────
	shimClient := services.NewShimClient(cfg.ShimBaseURL, &http.Client{Timeout: cfg.ShimTimeout})
	log.Printf("✓ Shim client targeting %s", shimClient.BaseURL())

	// ──── Step 4: Initialize Handlers ────
	gatewayHandler := handlers.NewGatewayHandler(shimClient, logger, cfg.StrictValidation)
	if cfg.StrictValidation {
		log.Println("  Strict validation enabled: malformed requests are rejected before the shim")
	}

	// ──── Step 5: Start HTTP Server ────
	r := router.New(gatewayHandler, limiter, cfg.FrontendURL)

	// No WriteTimeout: a chat turn lasts as long as the agent takes.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ MCP gateway ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
