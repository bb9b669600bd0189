// internal/services/sale_service_test.go
package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storedash/backend/internal/apperrors"
	"github.com/storedash/backend/internal/models"
)

func reloadProduct(t *testing.T, svc *SaleService, id uuid.UUID) models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, svc.db.First(&product, "id = ?", id).Error)
	return product
}

func TestRecordSaleDecrementsStockAndComputesRevenue(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	product := seedProduct(t, db, "Laptop", models.CategoryElectronics, 999.50, 50)

	sale, err := svc.RecordSale(superAdminPrincipal(), product.ID, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, sale.Quantity)
	assert.InDelta(t, 999.50*5, sale.Revenue, 0.001)
	require.NotNil(t, sale.Product)
	assert.Equal(t, "Laptop", sale.Product.Name)

	assert.Equal(t, 45, reloadProduct(t, svc, product.ID).Stock)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	product := seedProduct(t, db, "Laptop", models.CategoryElectronics, 999, 3)

	_, err := svc.RecordSale(superAdminPrincipal(), product.ID, 5)
	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, "Not enough stock. Available: 3", insufficient.Error())

	// Nothing was partially applied.
	assert.Equal(t, 3, reloadProduct(t, svc, product.ID).Stock)
	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Zero(t, saleCount)
}

func TestRecordSaleSequentialOversell(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	product := seedProduct(t, db, "Laptop", models.CategoryElectronics, 999, 50)

	_, err := svc.RecordSale(superAdminPrincipal(), product.ID, 30)
	require.NoError(t, err)

	_, err = svc.RecordSale(superAdminPrincipal(), product.ID, 30)
	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 20, insufficient.Available)

	assert.Equal(t, 20, reloadProduct(t, svc, product.ID).Stock)
}

func TestRecordSaleConcurrentOversell(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	product := seedProduct(t, db, "Laptop", models.CategoryElectronics, 999, 50)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordSale(superAdminPrincipal(), product.ID, 30)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var failures int
	for err := range results {
		if err != nil {
			var insufficient *apperrors.InsufficientStockError
			require.ErrorAs(t, err, &insufficient)
			failures++
		}
	}

	// Exactly one writer wins; the loser never partially decrements.
	assert.Equal(t, 1, failures)
	assert.Equal(t, 20, reloadProduct(t, svc, product.ID).Stock)
}

func TestRecordSaleForbiddenOutsideCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	product := seedProduct(t, db, "T-Shirt", models.CategoryClothing, 25, 100)

	_, err := svc.RecordSale(adminPrincipal(models.CategoryElectronics), product.ID, 1)
	var forbidden *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "You don't have permission to sell products from this category", forbidden.Error())

	assert.Equal(t, 100, reloadProduct(t, svc, product.ID).Stock)
}

func TestRecordSaleUsesPriceAtCommitTime(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	product := seedProduct(t, db, "Laptop", models.CategoryElectronics, 1000, 50)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		UpdateColumn("price", 800).Error)

	sale, err := svc.RecordSale(superAdminPrincipal(), product.ID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1600, sale.Revenue, 0.001)
}

func TestRecordSaleValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	_, err := svc.RecordSale(superAdminPrincipal(), uuid.New(), 0)
	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.RecordSale(superAdminPrincipal(), uuid.New(), 1)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	product := seedProduct(t, db, "Laptop", models.CategoryElectronics, 999, 50)

	sale, err := svc.RecordSale(superAdminPrincipal(), product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 45, reloadProduct(t, svc, product.ID).Stock)

	require.NoError(t, svc.DeleteSale(superAdminPrincipal(), sale.ID))
	assert.Equal(t, 50, reloadProduct(t, svc, product.ID).Stock)

	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Zero(t, saleCount)
}

// Sale reversal deliberately skips the category check: any authenticated
// admin can undo any sale. This pins that behavior so a future change to it
// is a conscious one.
func TestDeleteSaleIgnoresCategoryScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	product := seedProduct(t, db, "T-Shirt", models.CategoryClothing, 25, 100)

	sale, err := svc.RecordSale(superAdminPrincipal(), product.ID, 10)
	require.NoError(t, err)

	outsider := adminPrincipal(models.CategoryElectronics)
	require.NoError(t, svc.DeleteSale(outsider, sale.ID))
	assert.Equal(t, 100, reloadProduct(t, svc, product.ID).Stock)
}

func TestDeleteSaleUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	err := svc.DeleteSale(superAdminPrincipal(), uuid.New())
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListSalesScopedByProductCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db)

	laptop := seedProduct(t, db, "Laptop", models.CategoryElectronics, 999, 50)
	shirt := seedProduct(t, db, "T-Shirt", models.CategoryClothing, 25, 100)

	_, err := svc.RecordSale(superAdminPrincipal(), laptop.ID, 1)
	require.NoError(t, err)
	_, err = svc.RecordSale(superAdminPrincipal(), shirt.ID, 2)
	require.NoError(t, err)

	all, err := svc.ListSales(superAdminPrincipal())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListSales(adminPrincipal(models.CategoryElectronics))
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, laptop.ID, scoped[0].ProductID)

	none, err := svc.ListSales(adminPrincipal())
	require.NoError(t, err)
	assert.Empty(t, none)
}
