package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"campus-events/internal/config"
	"campus-events/internal/database"
	"campus-events/internal/models"
	"campus-events/internal/repositories"
	"campus-events/internal/utils"
)

func main() {
	var (
		email     = flag.String("email", "", "Admin email")
		password  = flag.String("password", "", "Admin password (at least 8 characters)")
		firstName = flag.String("first-name", "Admin", "First name")
		lastName  = flag.String("last-name", "User", "Last name")
	)
	flag.Parse()

	// Admin accounts cannot be self-registered through the auth service
	req := &models.UserCreateRequest{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      models.RoleAdmin,
	}
	if err := req.Validate(); err != nil {
		log.Fatal("Invalid admin details:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	hasher, err := utils.NewPasswordHasher(utils.DefaultPasswordParams())
	if err != nil {
		log.Fatal("Failed to configure password hashing:", err)
	}

	passwordHash, err := hasher.Hash(req.Password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         models.RoleAdmin,
	}

	userRepo := repositories.NewUserRepository(db.DB)
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			log.Fatalf("An account with email %s already exists", req.Email)
		}
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("Admin user created successfully!\n")
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("User ID: %s\n", admin.ID)
}
