package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/medibill/billing-api/internal/application/service"
	"github.com/medibill/billing-api/internal/config"
	"github.com/medibill/billing-api/internal/infrastructure/database"
	"github.com/medibill/billing-api/internal/infrastructure/repository"
	"github.com/medibill/billing-api/internal/presentation/http/handler"
	"github.com/medibill/billing-api/internal/presentation/http/routes"
	"github.com/medibill/billing-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the store profile
	if err := database.SeedDefaultData(db, &cfg.Store); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	invoiceRepo := repository.NewSavedInvoiceRepository(db)
	profileRepo := repository.NewStoreProfileRepository(db)
	idempotencyStore := repository.NewKVStore(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	invoiceService := service.NewInvoiceService(invoiceRepo, profileRepo, cfg.Billing.InvoicePrefix)
	profileService := service.NewProfileService(profileRepo)
	exportService := service.NewExportService()
	printerService := service.NewPrinterService(thermalPrinter, invoiceRepo, cfg.Printer.Type, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice: handler.NewInvoiceHandler(invoiceService, exportService),
		Profile: handler.NewProfileHandler(profileService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:              cfg,
		IdempotencyStore: idempotencyStore,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
