package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/medrelay-dev/medrelay/db"
	"github.com/medrelay-dev/medrelay/internal/config"
	"github.com/medrelay-dev/medrelay/internal/consumer"
	"github.com/medrelay-dev/medrelay/internal/crypto"
	"github.com/medrelay-dev/medrelay/internal/identity"
	"github.com/medrelay-dev/medrelay/internal/logger"
	"github.com/medrelay-dev/medrelay/internal/router"
	"github.com/medrelay-dev/medrelay/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	logger.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The storage key is validated before anything touches the database:
	// a mis-sized key is a fatal configuration error, not a runtime one.
	if err := crypto.Init(cfg.EncryptionKey); err != nil {
		log.Fatalf("Failed to initialize storage encryption: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseDSN); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ids := identity.NewClient(
		cfg.UserManagementURL,
		cfg.CollaborationURL,
		cfg.ConsentURL,
		time.Duration(cfg.HTTPTimeout)*time.Second,
	)

	service := services.NewNotificationService(ids, ids)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var c *consumer.Consumer
	if cfg.AMQPURL != "" {
		c, err = consumer.New(ctx, cfg.AMQPURL, cfg.QueueName, service)
		if err != nil {
			log.Fatalf("Failed to connect to notification queue: %v", err)
		}

		if err := c.Start(); err != nil {
			log.Fatalf("Failed to start notification consumer: %v", err)
		}
	} else {
		log.Println("AMQP_URL not set, event ingestion disabled")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.NewRouter(service),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then stop consuming before the HTTP
	// server drains so no event is half-processed when the process exits.
	<-ctx.Done()
	stop()
	log.Println("Shutting down")

	if c != nil {
		if err := c.Close(); err != nil {
			log.Printf("Failed to close notification consumer: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
}
