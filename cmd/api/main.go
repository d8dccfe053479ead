package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jkarimi/dukapos/internal/application/service"
	"github.com/jkarimi/dukapos/internal/config"
	"github.com/jkarimi/dukapos/internal/infrastructure/repository"
	"github.com/jkarimi/dukapos/internal/presentation/http/handler"
	"github.com/jkarimi/dukapos/internal/presentation/http/routes"
	"github.com/jkarimi/dukapos/pkg/logger"
	"github.com/jkarimi/dukapos/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.Must(logger.New(cfg.App.Debug))
	defer log.Sync()

	// Load the persisted collections
	catalogRepo, err := repository.NewCatalogRepository(cfg.Store.CatalogFile)
	if err != nil {
		log.Fatal("failed to load catalog", zap.Error(err))
	}
	ledgerRepo, err := repository.NewLedgerRepository(cfg.Store.SalesFile, logger.Named(log, "ledger"))
	if err != nil {
		log.Fatal("failed to load sales history", zap.Error(err))
	}
	userRepo, err := repository.NewUserRepository(cfg.Store.UsersFile)
	if err != nil {
		log.Fatal("failed to load users", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, logger.Named(log, "auth"))
	catalogService := service.NewCatalogService(catalogRepo, logger.Named(log, "catalog"))
	saleService := service.NewSaleService(catalogRepo, ledgerRepo, logger.Named(log, "sale"))
	reportService := service.NewReportService(catalogRepo, ledgerRepo, cfg.Inventory.LowStockThreshold, logger.Named(log, "report"))

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService, reportService),
		Sale:    handler.NewSaleHandler(saleService, reportService),
		Report:  handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Log:        logger.Named(log, "http"),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
