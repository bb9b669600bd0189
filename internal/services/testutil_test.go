// internal/services/testutil_test.go
package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storedash/backend/internal/authz"
	"github.com/storedash/backend/internal/models"
)

// setupTestDB opens a private in-memory database per test. The pool is
// capped at one connection so every query sees the same memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.AdminAccount{},
		&models.Product{},
		&models.Sale{},
	))

	return db
}

func superAdminPrincipal() authz.Principal {
	return authz.Principal{
		ID:    uuid.New(),
		Name:  "Root Admin",
		Email: "root@example.com",
		Role:  models.RoleSuperAdmin,
	}
}

func adminPrincipal(categories ...models.CategoryName) authz.Principal {
	return authz.Principal{
		ID:                 uuid.New(),
		Name:               "Scoped Admin",
		Email:              "scoped@example.com",
		Role:               models.RoleAdmin,
		AssignedCategories: models.CategoryList(categories),
	}
}

func seedProduct(t *testing.T, db *gorm.DB, name string, category models.CategoryName, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: category,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
