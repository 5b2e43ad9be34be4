package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/model"
	"fintrack/internal/repository"
	"fintrack/internal/service"
)

// Seeds a demo user with a starter budget and a month of sample expenses.
// Idempotent: re-running against an existing demo user is a no-op.

const (
	demoEmail    = "demo@fintrack.local"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Budget{},
		&model.BudgetItem{},
		&model.Expense{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)

	if _, err := users.FindByEmail(ctx, demoEmail); err == nil {
		log.Printf("Demo user %s already exists, nothing to do", demoEmail)
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check demo user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}
	user := &model.User{Email: demoEmail, PasswordHash: string(hashed)}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %s (id %s)", user.Email, user.ID)

	budgets := service.NewBudgetService(repository.NewBudgetRepository(gormDB), nil)
	starter := []service.ItemInput{
		{Name: "Rent", Amount: decimal.NewFromInt(1200), Category: "Housing"},
		{Name: "Groceries", Amount: decimal.NewFromInt(400), Category: "Food"},
		{Name: "Eating out", Amount: decimal.NewFromInt(150), Category: "Food"},
		{Name: "Transit pass", Amount: decimal.NewFromInt(90), Category: "Transportation"},
	}
	if err := budgets.Create(ctx, user.ID, starter); err != nil {
		log.Fatalf("Failed to create demo budget: %v", err)
	}
	log.Printf("Created demo budget with %d items", len(starter))

	expenses := service.NewExpenseService(repository.NewExpenseRepository(gormDB))
	now := time.Now()
	samples := []service.ExpenseInput{
		{Amount: decimal.NewFromInt(1200), Category: "Housing", Note: "June rent", Date: daysAgo(now, 27)},
		{Amount: decimal.NewFromFloat(62.40), Category: "Food", Note: "weekly groceries", Date: daysAgo(now, 20)},
		{Amount: decimal.NewFromFloat(18.75), Category: "Food", Note: "lunch", Date: daysAgo(now, 12)},
		{Amount: decimal.NewFromInt(90), Category: "Transportation", Note: "monthly pass", Date: daysAgo(now, 5)},
		{Amount: decimal.NewFromFloat(34.10), Category: "Food", Date: nil},
	}
	for _, in := range samples {
		if _, err := expenses.Create(ctx, user.ID, in); err != nil {
			log.Fatalf("Failed to create demo expense: %v", err)
		}
	}
	log.Printf("Created %d demo expenses", len(samples))

	log.Println("Seed completed")
}

func daysAgo(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, -days)
	return &t
}
