package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/db"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/internal/service"
)

// Seeds a demo user with two accounts and a handful of entries for local runs.
func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.PortfolioAccount{}, &model.PortfolioEntry{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)

	identity := service.NewIdentityService(userRepo, logger)
	accounts := service.NewAccountService(accountRepo, logger)
	entries := service.NewEntryService(entryRepo, accounts, logger)

	ctx := context.Background()

	user, err := identity.Resolve(ctx, "seed-demo-user", "demo@example.com", "Demo User", "")
	if err != nil {
		log.Fatalf("Failed to resolve demo user: %v", err)
	}
	log.Printf("Demo user ready: %s", user.Email)

	seedAccounts := []struct {
		name         string
		relationship string
		entries      []model.PortfolioEntry
	}{
		{
			name:         "Mom",
			relationship: "parent",
			entries: []model.PortfolioEntry{
				{Type: model.EntryTypeStock, Source: "Fidelity", Amount: decimal.RequireFromString("100.00"), Currency: "USD", Country: "US"},
				{Type: model.EntryTypeStock, Source: "Fidelity", Amount: decimal.RequireFromString("50.00"), Currency: "USD", Country: "US"},
				{Type: model.EntryTypeFixedDeposit, Source: "HDFC", Amount: decimal.RequireFromString("250000.00"), Currency: "INR", Country: "IN"},
			},
		},
		{
			name:         "Self",
			relationship: "self",
			entries: []model.PortfolioEntry{
				{Type: model.EntryTypeCrypto, Source: "Coinbase", Amount: decimal.RequireFromString("0.50"), Currency: "BTC", Country: "US"},
				{Type: model.EntryTypeMutualFund, Source: "Vanguard", Amount: decimal.RequireFromString("12000.00"), Currency: "USD", Country: "US"},
			},
		},
	}

	created := 0
	for _, seed := range seedAccounts {
		account, err := accounts.CreateAccount(ctx, seed.name, seed.relationship, user)
		if err != nil {
			log.Fatalf("Failed to create account %q: %v", seed.name, err)
		}
		for _, entry := range seed.entries {
			entry.AccountID = account.ID
			if _, err := entries.AddEntry(ctx, &entry, user); err != nil {
				log.Fatalf("Failed to add entry to %q: %v", seed.name, err)
			}
			created++
		}
		log.Printf("Seeded account %q with %d entries", seed.name, len(seed.entries))
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Accounts created: %d", len(seedAccounts))
	log.Printf("  - Entries created: %d", created)
}
