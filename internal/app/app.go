package app

import (
	"errors"
	"fmt"

	"tradejournal_backend/internal/auth"
	"tradejournal_backend/internal/config"
	"tradejournal_backend/internal/database"
	"tradejournal_backend/internal/handlers"
	"tradejournal_backend/internal/logger"
	"tradejournal_backend/internal/middleware"
	"tradejournal_backend/internal/models"
	"tradejournal_backend/internal/repositories"
	"tradejournal_backend/internal/routes"
	"tradejournal_backend/internal/services"
	"tradejournal_backend/internal/services/payment"
	"tradejournal_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	gateway := payment.NewRazorpayService(cfg)
	serviceContainer := initializeServices(cfg, gateway)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gateway services.PaymentGateway) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	tradeRepo := repositories.NewTradeRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()

	subscriptionService := services.NewSubscriptionService(userRepo, subscriptionRepo, gateway, cfg)
	tradeService := services.NewTradeService(tradeRepo, subscriptionService, cfg)
	analyticsService := services.NewAnalyticsService(tradeRepo)
	authService := services.NewAuthService(userRepo, subscriptionRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		TradeService:        tradeService,
		AnalyticsService:    analyticsService,
		SubscriptionService: subscriptionService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		TradeHandler:        handlers.NewTradeHandler(baseHandler, services.TradeService),
		AnalyticsHandler:    handlers.NewAnalyticsHandler(baseHandler, services.AnalyticsService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, services.SubscriptionService),
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, services.SubscriptionService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedAdmin creates the configured admin account on first boot. The admin is
// a normal user with a FREE subscription row, same as a self-registered one.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Username == "" || cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("ADMIN_USERNAME, ADMIN_EMAIL or ADMIN_PASSWORD not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("username = ?", cfg.Admin.Username).First(&existing)
		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "username", cfg.Admin.Username)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		hash, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Username:     cfg.Admin.Username,
			Email:        cfg.Admin.Email,
			PasswordHash: hash,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		sub := &models.Subscription{
			UserID:   admin.ID,
			PlanType: models.PlanFree,
			IsActive: true,
		}
		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create admin subscription: %w", err)
		}

		logger.Info("Admin user created", "username", cfg.Admin.Username)
		return nil
	})
}
