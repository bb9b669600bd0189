// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storedash/backend/internal/config"
	"github.com/storedash/backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		}
	} else {
		gormConfig = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Info),
			TranslateError: true,
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.AdminAccount{},
		&models.Product{},
		&models.Sale{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_product ON sales(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_admin_accounts_email ON admin_accounts(email)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedSuperAdmin creates the bootstrap super-admin account when none exists.
// Every other account is created through the team API with the admin role, so
// this is the only way a super-admin record ever comes into being.
func SeedSuperAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	var count int64
	if err := db.Model(&models.AdminAccount{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count super-admin accounts: %w", err)
	}

	if count > 0 {
		return nil
	}

	admin := &models.AdminAccount{
		Name:  cfg.SuperAdminName,
		Email: cfg.SuperAdminEmail,
		Role:  models.RoleSuperAdmin,
	}

	if err := admin.SetPassword(cfg.SuperAdminPassword); err != nil {
		return fmt.Errorf("failed to set super-admin password: %w", err)
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create super-admin account: %w", err)
	}

	logrus.WithField("email", admin.Email).Info("Bootstrap super-admin created")
	return nil
}
