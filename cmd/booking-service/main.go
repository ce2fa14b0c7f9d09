package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinicdesk/booking/internal/server"
	"github.com/clinicdesk/booking/pkg/config"
	"github.com/clinicdesk/booking/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.LogLevel)

	svc, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize booking service: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		if err := svc.Start(addr); err != nil {
			logger.Infof("HTTP server stopped: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down booking service...")
	if err := svc.Stop(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
	logger.Info("Booking service stopped")
}
