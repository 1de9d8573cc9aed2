// Command transaction-service serves the cart, checkout and transaction
// history API.
//
//	@title						Campus Events API
//	@version					1.0
//	@description				Cart, checkout and transaction history, identity and e-ticket services.
//	@BasePath					/
//	@securityDefinitions.apikey	AccessToken
//	@in							header
//	@name						x-auth-token
//
//	@securityDefinitions.apikey	ServiceKey
//	@in							header
//	@name						x-service-key
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-events/internal/auth"
	"campus-events/internal/clients"
	"campus-events/internal/config"
	"campus-events/internal/database"
	"campus-events/internal/handlers"
	"campus-events/internal/middleware"
	"campus-events/internal/repositories"
	"campus-events/internal/server"
	"campus-events/internal/services"
	"campus-events/internal/telemetry"
)

const serviceName = "transaction-service"

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

	timeout := cfg.Services.Timeout
	identityClient := clients.NewIdentityClient(cfg.Services.IdentityURL, timeout)
	cartService := services.NewCartService(
		repositories.NewTransactionRepository(db.DB),
		clients.NewOfferingClient(cfg.Services.OfferingURL, timeout),
		clients.NewPromotionClient(cfg.Services.PromotionURL, timeout),
		clients.NewTicketClient(cfg.Services.TicketURL, cfg.Services.APIKey, timeout),
		clients.NewPaymentClient(cfg.Services.PaymentURL, timeout),
		identityClient,
	)

	router := server.New(server.Options{
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Development:    cfg.IsDevelopment(),
		Health:         db.DB,
	})

	protected := router.Group("", middleware.Authenticate(tokens))
	handlers.NewCartHandler(cartService).RegisterRoutes(protected)
	handlers.NewTransactionHandler(cartService).RegisterRoutes(protected)

	log.Printf("Transaction service using offering=%s promotion=%s ticket=%s payment=%q",
		cfg.Services.OfferingURL, cfg.Services.PromotionURL, cfg.Services.TicketURL, cfg.Services.PaymentURL)

	if err := server.Run(ctx, cfg.Address(), router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
