package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/classiclink/ledger-api/internal/application/service"
	"github.com/classiclink/ledger-api/internal/config"
	"github.com/classiclink/ledger-api/internal/infrastructure/database"
	"github.com/classiclink/ledger-api/internal/infrastructure/repository"
	"github.com/classiclink/ledger-api/internal/presentation/http/handler"
	"github.com/classiclink/ledger-api/internal/presentation/http/routes"
	"github.com/classiclink/ledger-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	itemRepo := repository.NewItemRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	taxCodeRepo := repository.NewTaxCodeRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	sequenceRepo := repository.NewSequenceRepository(
		db,
		cfg.Ledger.SequenceMaxRetries,
		cfg.Ledger.SequenceRetryBackoff,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	customerService := service.NewCustomerService(customerRepo, taxCodeRepo)
	itemService := service.NewItemService(itemRepo, accountRepo, taxCodeRepo)
	accountService := service.NewAccountService(accountRepo)
	taxCodeService := service.NewTaxCodeService(taxCodeRepo, accountRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	settingsService := service.NewSettingsService(settingsRepo, accountRepo)
	postingService := service.NewPostingService(
		transactionRepo,
		customerRepo,
		itemRepo,
		taxCodeRepo,
		settingsRepo,
		sequenceRepo,
		cfg.Ledger,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Posting:     handler.NewPostingHandler(postingService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Customer:    handler.NewCustomerHandler(customerService),
		Item:        handler.NewItemHandler(itemService),
		Account:     handler.NewAccountHandler(accountService, transactionService),
		TaxCode:     handler.NewTaxCodeHandler(taxCodeService),
		Settings:    handler.NewSettingsHandler(settingsService),
		User:        handler.NewUserHandler(userService),
	}

	// Expired idempotency keys pile up otherwise; sweep them hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: Failed to clean up idempotency keys: %v", err)
			}
		}
	}()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
