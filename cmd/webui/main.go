package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/aoimura/meeting-room-reservation/internal/client"
	"github.com/aoimura/meeting-room-reservation/internal/config"
	"github.com/aoimura/meeting-room-reservation/internal/logger"
	"github.com/aoimura/meeting-room-reservation/internal/webui"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadUI()
	log := logger.New(os.Getenv("LOG_LEVEL"))

	creds, err := webui.LoadCredentials(cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	ui := webui.NewServer(client.New(cfg.APIBaseURL), creds, log)
	ui.Register(e)

	log.WithField("port", cfg.Port).Info("reservation UI listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
