package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"portfolio-tracker/docs"
	"portfolio-tracker/internal/auth"
	"portfolio-tracker/internal/cache"
	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/db"
	"portfolio-tracker/internal/handler"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/internal/router"
	"portfolio-tracker/internal/service"
)

// @title Portfolio Tracker API
// @version 1.0
// @description Portfolio tracker API with per-user accounts, entries, and aggregated views.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.PortfolioAccount{},
		&model.PortfolioEntry{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	identityService := service.NewIdentityService(userRepo, logger)
	authService := service.NewAuthService(identityService, jwtService, tokenStore)
	accountService := service.NewAccountService(accountRepo, logger)
	entryService := service.NewEntryService(entryRepo, accountService, logger)
	summaryService := service.NewSummaryService(entryRepo, accountRepo, logger)
	exportService := service.NewExportService()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(identityService)
	accountHandler := handler.NewAccountHandler(accountService, identityService)
	portfolioHandler := handler.NewPortfolioHandler(entryService, exportService, identityService)
	summaryHandler := handler.NewSummaryHandler(summaryService, identityService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		accountHandler,
		portfolioHandler,
		summaryHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
