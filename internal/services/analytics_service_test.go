// internal/services/analytics_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storedash/backend/internal/models"
)

func TestGetAnalyticsScopedToPrincipal(t *testing.T) {
	db := setupTestDB(t)
	saleSvc := NewSaleService(db)
	svc := NewAnalyticsService(db, nil)

	laptop := seedProduct(t, db, "Laptop", models.CategoryElectronics, 1000, 50)
	shirt := seedProduct(t, db, "T-Shirt", models.CategoryClothing, 25, 8)

	_, err := saleSvc.RecordSale(superAdminPrincipal(), laptop.ID, 2)
	require.NoError(t, err)
	_, err = saleSvc.RecordSale(superAdminPrincipal(), shirt.ID, 4)
	require.NoError(t, err)

	full, err := svc.GetAnalytics(superAdminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, 2, full.TotalProducts)
	assert.InDelta(t, 2000+100, full.TotalRevenue, 0.001)
	assert.Equal(t, 6, full.TotalItemsSold)

	scoped, err := svc.GetAnalytics(adminPrincipal(models.CategoryElectronics))
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.TotalProducts)
	assert.InDelta(t, 2000, scoped.TotalRevenue, 0.001)
	assert.Equal(t, 2, scoped.TotalItemsSold)

	empty, err := svc.GetAnalytics(adminPrincipal())
	require.NoError(t, err)
	assert.Zero(t, empty.TotalProducts)
	assert.Zero(t, empty.TotalRevenue)
}

func TestGetDashboardStatsWithoutCache(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnalyticsService(db, nil)

	seedProduct(t, db, "Laptop", models.CategoryElectronics, 1000, 50)
	seedProduct(t, db, "Cable", models.CategoryElectronics, 10, 4)
	seedProduct(t, db, "Mug", models.CategoryHome, 12, 0)

	stats, err := svc.GetDashboardStats(context.Background(), superAdminPrincipal())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, 1, stats.StockStatus.InStock)
	assert.Equal(t, 1, stats.StockStatus.LowStock)
	assert.Equal(t, 1, stats.StockStatus.OutOfStock)
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Len(t, stats.RecentProducts, 3)
}

func TestGetDashboardStatsScopedForAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnalyticsService(db, nil)

	seedProduct(t, db, "Laptop", models.CategoryElectronics, 1000, 50)
	seedProduct(t, db, "Mug", models.CategoryHome, 12, 0)

	stats, err := svc.GetDashboardStats(context.Background(), adminPrincipal(models.CategoryHome))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.StockStatus.OutOfStock)
	assert.Zero(t, stats.StockStatus.InStock)
}
