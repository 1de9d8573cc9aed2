// Command ticket-service stores e-tickets delivered at checkout and
// validates them at the door.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-events/internal/auth"
	"campus-events/internal/config"
	"campus-events/internal/database"
	"campus-events/internal/handlers"
	"campus-events/internal/middleware"
	"campus-events/internal/repositories"
	"campus-events/internal/server"
	"campus-events/internal/services"
	"campus-events/internal/telemetry"
)

const serviceName = "ticket-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if err := cfg.RequireServiceKey(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: cfg.ServiceName(serviceName),
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
	})
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	tokens, err := auth.NewTokenManager(cfg.TokenConfig())
	if err != nil {
		log.Fatal("Failed to configure tokens:", err)
	}

	ticketService := services.NewTicketService(repositories.NewTicketRepository(db.DB))

	router := server.New(server.Options{
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Development:    cfg.IsDevelopment(),
		Health:         db.DB,
	})
	handlers.NewTicketHandler(ticketService).RegisterRoutes(router.Group(""),
		middleware.Authenticate(tokens), middleware.RequireServiceKey(cfg.Services.APIKey))

	if err := server.Run(ctx, cfg.Address(), router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
