package database

import (
	"fmt"
	"log"

	"github.com/classiclink/ledger-api/internal/config"
	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Users
		&entity.User{},

		// Master data
		&entity.Account{},
		&entity.Customer{},
		&entity.Item{},
		&entity.TaxCode{},
		&entity.ItemTaxLink{},
		&entity.CustomerTaxLink{},

		// Posted documents
		&entity.TransactionHeader{},
		&entity.LineItem{},
		&entity.TaxLine{},
		&entity.GLEntry{},

		// System entities
		&entity.SequenceCounter{},
		&entity.LedgerSettings{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// defaultAccounts is the minimal chart of accounts the posting engine needs.
var defaultAccounts = []entity.Account{
	{Number: 1200, Name: "Accounts Receivable", Type: enum.AccountTypeAsset},
	{Number: 1400, Name: "Inventory Asset", Type: enum.AccountTypeAsset},
	{Number: 2000, Name: "Accounts Payable", Type: enum.AccountTypeLiability},
	{Number: 2200, Name: "Sales Tax Payable", Type: enum.AccountTypeLiability},
	{Number: 4000, Name: "Sales Income", Type: enum.AccountTypeIncome},
	{Number: 5000, Name: "Cost of Goods Sold", Type: enum.AccountTypeExpense},
	{Number: 6000, Name: "General Expense", Type: enum.AccountTypeExpense},
}

// SeedDefaultData seeds the chart of accounts, ledger settings, a default
// sales tax code and the admin user.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	for i := range defaultAccounts {
		var existing entity.Account
		if err := db.Where("number = ?", defaultAccounts[i].Number).First(&existing).Error; err != nil {
			if err := db.Create(&defaultAccounts[i]).Error; err != nil {
				log.Printf("Warning: failed to create account %d: %v", defaultAccounts[i].Number, err)
			}
		}
	}

	var receivable, payable, taxPayable entity.Account
	if err := db.Where("number = ?", 1200).First(&receivable).Error; err != nil {
		return fmt.Errorf("receivable account missing after seed: %w", err)
	}
	if err := db.Where("number = ?", 2000).First(&payable).Error; err != nil {
		return fmt.Errorf("payable account missing after seed: %w", err)
	}
	if err := db.Where("number = ?", 2200).First(&taxPayable).Error; err != nil {
		return fmt.Errorf("tax payable account missing after seed: %w", err)
	}

	var settings entity.LedgerSettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.LedgerSettings{
			ReceivableAccountID: receivable.ID,
			PayableAccountID:    payable.ID,
			EmitZeroTaxLines:    viper.GetBool("LEDGER_EMIT_ZERO_TAX_LINES"),
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create ledger settings: %v", err)
		}
	}

	var salesTax entity.TaxCode
	if err := db.Where("code = ?", "TAX").First(&salesTax).Error; err != nil {
		salesTax = entity.TaxCode{
			Code:               "TAX",
			Name:               "Sales Tax",
			Rate:               decimal.RequireFromString("7.5"),
			LiabilityAccountID: taxPayable.ID,
		}
		if err := db.Create(&salesTax).Error; err != nil {
			log.Printf("Warning: failed to create default tax code: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Admin"
				}
				adminUser := entity.User{
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     "admin",
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
