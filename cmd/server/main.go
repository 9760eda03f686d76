package main // Entry point package

import (
	"github.com/joho/godotenv" // loads .env files into the environment
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/roomgrid/roombook/internal/config"
	"github.com/roomgrid/roombook/internal/database"
	"github.com/roomgrid/roombook/internal/handler"
	"github.com/roomgrid/roombook/internal/queue"
	"github.com/roomgrid/roombook/internal/repository"
	"github.com/roomgrid/roombook/internal/router"
	queuepublisher "github.com/roomgrid/roombook/internal/service"
)

func main() {
	// .env is optional; in containers the environment is injected directly.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if cfg.Env == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting
	// but the booking API keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	events := queuepublisher.New(log)

	deps := router.Deps{
		DB:        db,
		Rdb:       rdb,
		JWTSecret: cfg.JWTSecret,
		CacheCfg:  cacheCfg,
		RateCfg:   rateCfg,
		Auth:      handler.NewAuthHandler(cfg, users, tokens, log),
		Rooms:     handler.NewRoomHandler(rooms, log),
		Bookings:  handler.NewBookingHandler(bookings, events, rdb, cacheCfg, log),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, deps)

	// The consumer tails booking events into logs/booking.log and
	// reconnects on broker failure for the life of the process.
	go queue.StartBookingConsumer(log)

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("server starting")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
