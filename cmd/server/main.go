package main // Entry point package

import (
	"context"
	"log"  // Logging library
	"time"

	"github.com/joho/godotenv"    // Load .env files in local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-hub/internal/config"     // Internal config loader
	"github.com/iliyamo/event-hub/internal/database"   // Database pool and schema migration
	"github.com/iliyamo/event-hub/internal/handler"    // HTTP handlers
	"github.com/iliyamo/event-hub/internal/middleware" // Cache and rate limit middleware
	"github.com/iliyamo/event-hub/internal/queue"      // Booking event consumer
	"github.com/iliyamo/event-hub/internal/repository" // Data access layer
	"github.com/iliyamo/event-hub/internal/router"     // Route registration
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Apply the schema before serving traffic. A half-migrated instance
	// must not start.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)
	favorites := repository.NewFavoriteRepo(db)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users),
		Users:     handler.NewUserHandler(cfg, users),
		Events:    handler.NewEventHandler(events),
		Bookings:  handler.NewBookingHandler(bookings, events),
		Reviews:   handler.NewReviewHandler(reviews),
		Favorites: handler.NewFavoriteHandler(favorites),
	}

	e := echo.New() // Create Echo instance

	// Redis is optional: with no client both the cache and the limiter
	// become pass-through middleware.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
	router.RegisterPublic(e, h, cache)
	router.RegisterProtected(e, h, cfg.JWTSecret)

	// Consume booking.created messages in the background; the consumer
	// reconnects on its own if the broker goes away.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
