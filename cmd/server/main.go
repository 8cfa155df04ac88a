package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/eventmate/ticketing/internal/config"
	"github.com/eventmate/ticketing/internal/database"
	"github.com/eventmate/ticketing/internal/handler"
	"github.com/eventmate/ticketing/internal/middleware"
	"github.com/eventmate/ticketing/internal/queue"
	"github.com/eventmate/ticketing/internal/repository"
	"github.com/eventmate/ticketing/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiter and cache degrade

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	tickets := repository.NewTicketRepo(db)
	bookings := repository.NewBookingRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	eventH := handler.NewEventHandler(events)
	bookingH := handler.NewBookingHandler(bookings, tickets, events, users)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Background consumer renders queued notifications; it reconnects
	// on its own and never stops the server.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterHealth(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterPublic(e, eventH, bookingH, cache)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
