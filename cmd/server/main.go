package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collector/internal/app"
	"collector/internal/handlers"
	"collector/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		AppName:   "collector",
		BodyLimit: application.Config.BodyLimitBytes,
	})

	server.Use(recover.New())
	server.Use(helmet.New())

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to set up router", err)
		os.Exit(1)
	}

	if application.Config.StaticDir != "" {
		server.Static("/", application.Config.StaticDir)
	}

	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		if err := server.Listen(address); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Er("failed to shut down server", err)
	}

	if err := application.Close(); err != nil {
		log.Er("failed to close application", err)
	}
}
