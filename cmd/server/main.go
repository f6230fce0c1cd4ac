package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/aoimura/meeting-room-reservation/internal/booking"
	"github.com/aoimura/meeting-room-reservation/internal/config"
	"github.com/aoimura/meeting-room-reservation/internal/database"
	"github.com/aoimura/meeting-room-reservation/internal/handler"
	"github.com/aoimura/meeting-room-reservation/internal/logger"
	appmw "github.com/aoimura/meeting-room-reservation/internal/middleware"
	"github.com/aoimura/meeting-room-reservation/internal/repository"
	"github.com/aoimura/meeting-room-reservation/internal/router"
	"github.com/aoimura/meeting-room-reservation/internal/seed"
	"github.com/aoimura/meeting-room-reservation/internal/validator"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(os.Getenv("LOG_LEVEL"))

	db, err := database.Open(database.Config{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	// Demo data goes in only when every table is empty.
	if err := seed.Run(ctx, db, userRepo, roomRepo, bookingRepo, cfg.OpenHour); err != nil {
		log.Warnf("seeding skipped: %v", err)
	}

	rules := booking.Validator{OpenHour: cfg.OpenHour, CloseHour: cfg.CloseHour}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.Use(middleware.Recover())
	e.Use(appmw.RateLimit(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.Register(e,
		handler.NewUserHandler(userRepo),
		handler.NewRoomHandler(roomRepo),
		handler.NewBookingHandler(bookingRepo, roomRepo, userRepo, rules, log),
	)

	log.WithField("port", cfg.Port).Info("reservation API listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
