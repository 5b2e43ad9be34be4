package main

import (
	"log"
	"net/http"
	"os"

	_ "fintrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/handler"
	"fintrack/internal/model"
	"fintrack/internal/repository"
	"fintrack/internal/router"
	"fintrack/internal/service"
)

// @title Fintrack API
// @version 1.0
// @description Personal-finance tracker API: accounts, one monthly budget per user, and dated expense records.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Raw identity token, no Bearer prefix.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Expense{},
			&model.BudgetItem{},
			&model.Budget{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Budget{},
		&model.BudgetItem{},
		&model.Expense{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	budgetRepo := repository.NewBudgetRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	tokenService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, tokenService)
	budgetService := service.NewBudgetService(budgetRepo, cacheClient)
	expenseService := service.NewExpenseService(expenseRepo)

	authHandler := handler.NewAuthHandler(authService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	router.Register(e, tokenService, authHandler, budgetHandler, expenseHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
