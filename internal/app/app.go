package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	mongooptions "go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"katador_backend/internal/auth"
	"katador_backend/internal/config"
	"katador_backend/internal/handlers"
	"katador_backend/internal/logger"
	"katador_backend/internal/middleware"
	"katador_backend/internal/repositories"
	"katador_backend/internal/routes"
	"katador_backend/internal/services"
	"katador_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	mongoDB, mongoClient := connectMongo(cfg)
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Mongo disconnect failed", "error", err)
		}
	}()

	gormDB := connectLedger(cfg)

	ginRouter := SetupRouter(cfg, mongoDB, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func connectMongo(cfg *config.Config) (*mongo.Database, *mongo.Client) {
	logger.Info("Connecting to credential store...")

	clientOpts := mongooptions.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(60 * time.Second)

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("MongoDB unavailable", "error", err)
	}

	db := client.Database(cfg.Mongo.Database)
	if err := repositories.EnsureAccountIndexes(ctx, db); err != nil {
		logger.Fatal("Failed to create account indexes", "error", err)
	}

	logger.Info("Credential store connected", "database", cfg.Mongo.Database)
	return db, client
}

func connectLedger(cfg *config.Config) *gorm.DB {
	logger.Info("Connecting to ledger store...")

	gormDB, err := gorm.Open(mysql.Open(cfg.LedgerDSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}

	// Пул общий на процесс; размер из конфигурации
	sqlDB.SetMaxOpenConns(cfg.Ledger.PoolSize)
	sqlDB.SetMaxIdleConns(cfg.Ledger.PoolSize)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("MySQL unavailable", "error", err)
	}

	if err := repositories.AutoMigrateLedger(gormDB); err != nil {
		logger.Fatal("Ledger migration failed", "error", err)
	}

	logger.Info("Ledger store connected", "database", cfg.Ledger.Database, "pool_size", cfg.Ledger.PoolSize)
	return gormDB
}

func SetupRouter(cfg *config.Config, mongoDB *mongo.Database, gormDB *gorm.DB) *gin.Engine {
	// --- Инициализация репозиториев ---
	accountRepo := repositories.NewAccountRepository(mongoDB)
	ledgerRepo := repositories.NewLedgerRepository(gormDB)

	// --- Инициализация сервисов ---
	authService := services.NewAuthService(accountRepo, ledgerRepo)
	profileService := services.NewProfileService(accountRepo, ledgerRepo)
	creditService := services.NewCreditService(ledgerRepo)
	adminService := services.NewAdminService(ledgerRepo)

	// --- Инициализация хэндлеров ---
	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := &routes.AppHandlers{
		Auth:   handlers.NewAuthHandler(baseHandler, authService, profileService),
		Credit: handlers.NewCreditHandler(baseHandler, creditService),
		Admin:  handlers.NewAdminHandler(baseHandler, adminService),
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware(cfg))
	ginRouter.Use(middleware.RateLimitMiddleware(cfg))

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}
