package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jkarimi/dukapos/internal/config"
	"github.com/jkarimi/dukapos/internal/presentation/http/handler"
	"github.com/jkarimi/dukapos/internal/presentation/http/middleware"
	"github.com/jkarimi/dukapos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Sale    *handler.SaleHandler
	Report  *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Log        *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-cashier rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Catalog routes
	items := protected.Group("/items")
	{
		items.GET("", h.Catalog.List)
		items.GET("/search", h.Catalog.Search)
		items.GET("/low-stock", h.Catalog.LowStock)
		items.POST("", h.Catalog.Create)
		items.PUT("/:id", h.Catalog.Update)
		items.DELETE("/:id", h.Catalog.Delete)
		items.POST("/:id/incoming", h.Catalog.Incoming)
		items.POST("/:id/outgoing", h.Catalog.Outgoing)
	}

	// Sale session routes
	sale := protected.Group("/sale")
	{
		sale.GET("", h.Sale.ViewCart)
		sale.DELETE("", h.Sale.Abandon)
		sale.POST("/lines", h.Sale.AddLine)
		sale.POST("/complete", h.Sale.Complete)
		sale.GET("/receipt", h.Sale.LastReceipt)
	}

	// History and report routes
	protected.GET("/sales", h.Report.History)
	protected.GET("/reports/sales", h.Report.RangeReport)
}
