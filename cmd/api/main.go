package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/pathos-labs/pathos/backend/internal/adapters/genius"
	"github.com/pathos-labs/pathos/backend/internal/adapters/openai"
	"github.com/pathos-labs/pathos/backend/internal/adapters/places"
	"github.com/pathos-labs/pathos/backend/internal/adapters/rest"
	"github.com/pathos-labs/pathos/backend/internal/adapters/spotify"
	"github.com/pathos-labs/pathos/backend/internal/adapters/sqlite"
	"github.com/pathos-labs/pathos/backend/internal/adapters/wiki"
	"github.com/pathos-labs/pathos/backend/internal/cache"
	"github.com/pathos-labs/pathos/backend/internal/config"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
	"github.com/pathos-labs/pathos/backend/internal/core/services"
	"github.com/pathos-labs/pathos/backend/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// Driven adapters.
	store, err := sqlite.NewStore(cfg.StoragePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer store.Close()

	var wikiCache ports.Cache
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		wikiCache = cache.NewRedis(client, "wiki", 24*time.Hour)
		log.Printf("Using Redis cache at %s", cfg.RedisAddr)
	} else {
		wikiCache = cache.NewMemory(1000, 24*time.Hour)
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}

	spotifyClient := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	geniusClient := genius.NewClient(httpClient, cfg.GeniusAccessToken)
	placesClient := places.NewClient(httpClient, cfg.PlacesAPIKey)
	wikiClient := wiki.NewClient(httpClient, wikiCache, "")
	composer := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAITimeout)

	// Core services.
	pool := worker.NewPool(4, 64)
	defer pool.Stop()

	enricher := services.NewEnricher(placesClient, wikiClient, pool, cfg.WikiLanguage)
	svc := services.NewOrchestrator(spotifyClient, geniusClient, enricher, composer, store)

	// Driving adapter.
	handler := rest.NewHandler(svc)

	log.Println("------------------------------------------------")
	log.Printf("🥾 Pathos API is running on http://localhost:%s", cfg.Port)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
