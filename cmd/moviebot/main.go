// In file: cmd/moviebot/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dileep-u-k/moviebot/internal/stats"
	"github.com/dileep-u-k/moviebot/internal/tmdb"
	"github.com/dileep-u-k/moviebot/internal/tools"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// main is the composition root: it loads configuration, builds the TMDB
// tools, injects dependencies, and starts the webhook server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Movie Bot | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	toolManager, err := initializeToolManager(cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	var recorder StatsRecorder
	if rdb := connectRedis(cfg.RedisAddr); rdb != nil {
		defer rdb.Close()
		recorder = stats.NewProfiler(rdb)
	}

	handler := NewSWAIGHandler(toolManager, recorder)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := NewRouter(cfg, handler)
	if cfg.BasicAuthEnabled() {
		log.Printf("🔒 Basic auth enabled on %s", cfg.Route)
	}

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv, cfg.Route)
}

// initializeToolManager creates and registers all movie tools.
func initializeToolManager(cfg *AppConfig) (*tools.ToolManager, error) {
	client, err := tmdb.NewClient(cfg.TMDBAPIKey, tmdb.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create TMDB client: %w", err)
	}
	movieTools, err := tools.NewMovieTools(client, cfg.Tools)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie tools: %w", err)
	}

	manager := tools.NewToolManager()
	for _, tool := range movieTools {
		if err := manager.Register(tool); err != nil {
			return nil, fmt.Errorf("failed to register tool: %w", err)
		}
	}

	log.Printf("✅ Tool Manager initialized with %d tools.", manager.ToolCount())
	return manager, nil
}

// connectRedis returns nil when statistics are not configured or the server is unreachable.
func connectRedis(addr string) *redis.Client {
	if addr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, usage statistics disabled.")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("⚠️ Could not connect to Redis at %s, usage statistics disabled: %v", addr, err)
		_ = rdb.Close()
		return nil
	}
	log.Printf("✅ Connected to Redis at %s.", addr)
	return rdb
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server, route string) {
	go func() {
		log.Printf("👂 Movie Bot is listening on http://localhost%s%s", srv.Addr, route)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
