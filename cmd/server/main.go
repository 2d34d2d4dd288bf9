// Package main is the entry point for the Movie Discovery API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/cache"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/config"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/database"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/handlers"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/omdb"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/ratelimit"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/router"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/youtube"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("🚀 Movie Discovery API %s starting...", Version)

	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("📋 Config loaded: port=%s, gin_mode=%s, cache_ttl=%ds, search_limit=%d/%ds",
		cfg.Port, cfg.GinMode, cfg.CacheTTLSeconds, cfg.SearchRateLimit, cfg.SearchRateWindow)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Connect to Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("✅ Database connected")

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	// Step 3: Create Services
	movies := omdb.New(cfg.OMDbAPIKey, cfg.OMDbBaseURL)
	if cfg.OMDbAPIKey == "" {
		log.Println("⚠️  No OMDb API key configured (set OMDB_API_KEY — movie endpoints will fail without it)")
	} else {
		log.Println("✅ OMDb client configured")
	}

	trailers := youtube.New(cfg.YouTubeAPIKey, cfg.YouTubeBaseURL)
	if cfg.YouTubeAPIKey == "" {
		log.Println("⚠️  No YouTube API key configured (set YOUTUBE_API_KEY to enable trailer lookups)")
	} else {
		log.Println("✅ YouTube trailer lookup enabled")
	}

	responseCache := cache.New(time.Duration(cfg.CacheTTLSeconds) * time.Second)
	searchLimiter := ratelimit.New(cfg.SearchRateLimit, time.Duration(cfg.SearchRateWindow)*time.Second)

	// Step 4: Setup HTTP Router
	h := handlers.NewHandler(db, movies, trailers, responseCache, searchLimiter, cfg, Version)
	r := router.Setup(h, cfg.AllowedOrigins)

	// Step 5: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 Health check: http://localhost:%s/api/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 6: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
