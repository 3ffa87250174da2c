package app

import (
	"errors"
	"fmt"

	"readly_backend/database"
	"readly_backend/internal/adverify"
	"readly_backend/internal/config"
	"readly_backend/internal/email"
	"readly_backend/internal/handlers"
	"readly_backend/internal/logger"
	"readly_backend/internal/middleware"
	"readly_backend/internal/models"
	"readly_backend/internal/routes"
	"readly_backend/internal/services"
	"readly_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
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

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost == "" || cfg.Server.Env == "test" {
		logger.Warn("SMTP is not configured, using mock email provider")
		emailProvider = &MockEmailProvider{}
	} else {
		emailProvider = email.NewSMTPProvider(cfg)
	}

	verifier := adverify.FromMode(cfg.AdVerify.Mode, cfg.AdVerify.JWTSecret)
	logger.Info("Ad verification initialized", "mode", cfg.AdVerify.Mode)

	return services.NewServiceContainer(emailProvider, verifier)
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, container.Auth),
		UserHandler: handlers.NewUserHandler(baseHandler, container.User),
		BookHandler: handlers.NewBookHandler(baseHandler, container.Book, container.Access),
		PremiumHandler: handlers.NewPremiumHandler(baseHandler, container.Premium),
		EntitlementHandler: handlers.NewEntitlementHandler(
			baseHandler, container.ChapterUnlock, container.Journal, container.Download),
		ProgressHandler: handlers.NewProgressHandler(baseHandler, container.Progress),
		PurchaseHandler: handlers.NewPurchaseHandler(baseHandler, container.Purchase),
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

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
