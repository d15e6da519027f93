package database

import (
	"fmt"
	"log"

	"github.com/medibill/billing-api/internal/config"
	"github.com/medibill/billing-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.StoreProfile{},
		&entity.SavedInvoice{},
		&entity.KVEntry{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the store profile row on first start, using the
// configured store header.
func SeedDefaultData(db *gorm.DB, cfg *config.StoreConfig) error {
	var count int64
	if err := db.Model(&entity.StoreProfile{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check store profile: %w", err)
	}
	if count > 0 {
		return nil
	}

	profile := entity.StoreProfile{
		StoreName:   cfg.Name,
		Address:     cfg.Address,
		Phone:       cfg.Phone,
		AltPhone:    cfg.AltPhone,
		TaxID:       cfg.TaxID,
		ManagerName: cfg.ManagerName,
	}
	if err := db.Create(&profile).Error; err != nil {
		return fmt.Errorf("failed to seed store profile: %w", err)
	}

	log.Printf("Seeded default store profile: %s", profile.StoreName)
	return nil
}
