// Command auth-service issues and refreshes credential pairs and manages
// user accounts.
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
	"campus-events/internal/utils"
)

const serviceName = "auth-service"

// Five failed logins per client IP per 15 minutes
const (
	maxLoginAttempts = 5
	loginWindow      = 15 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
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

	hasher, err := utils.NewPasswordHasher(utils.DefaultPasswordParams())
	if err != nil {
		log.Fatal("Failed to configure password hashing:", err)
	}

	identityService := services.NewIdentityService(repositories.NewUserRepository(db.DB), tokens, hasher)

	limiter := middleware.NewLoginRateLimiter(maxLoginAttempts, loginWindow)
	go limiter.Run(ctx, loginWindow)

	router := server.New(server.Options{
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Development:    cfg.IsDevelopment(),
		Health:         db.DB,
	})
	handlers.NewAuthHandler(identityService).RegisterRoutes(router.Group(""), middleware.Authenticate(tokens), limiter)

	if err := server.Run(ctx, cfg.Address(), router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
