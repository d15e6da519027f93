package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medibill/billing-api/internal/config"
	"github.com/medibill/billing-api/internal/presentation/http/handler"
	"github.com/medibill/billing-api/internal/presentation/http/middleware"
	"github.com/medibill/billing-api/pkg/kvstore"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice *handler.InvoiceHandler
	Profile *handler.ProfileHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg              *config.Config
	IdempotencyStore kvstore.Store
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
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
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerInvoiceRoutes(v1, h, deps)
		registerProfileRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := v1.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("/preview", h.Invoice.Preview)
		// Invoice creation uses idempotency middleware to prevent duplicates
		invoices.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Store: deps.IdempotencyStore,
		}), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.GET("/:id/export", h.Invoice.Export)
		invoices.GET("/:id/pdf", h.Invoice.ExportPDF)
		invoices.POST("/:id/print", h.Printer.PrintInvoice)
	}
}

func registerProfileRoutes(v1 *gin.RouterGroup, h *Handlers) {
	profile := v1.Group("/profile")
	{
		profile.GET("", h.Profile.GetProfile)
		profile.PUT("", h.Profile.UpdateProfile)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
