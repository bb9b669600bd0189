// internal/services/sale_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/apperrors"
	"github.com/storedash/backend/internal/authz"
	"github.com/storedash/backend/internal/models"
)

type SaleService struct {
	db *gorm.DB
}

func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{db: db}
}

// RecordSale creates the sale row and decrements the product's stock in one
// transaction. The decrement is a conditional update guarded by the current
// stock, so two concurrent sales can never oversell a product: the losing
// writer sees zero affected rows and fails with InsufficientStock. Revenue is
// computed from the product's price at commit time.
func (s *SaleService) RecordSale(principal authz.Principal, productID uuid.UUID, quantity int) (*models.Sale, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidation("Quantity must be greater than zero")
	}

	var sale models.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !authz.CanWriteCategory(principal, product.Category) {
			return apperrors.NewForbidden("You don't have permission to sell products from this category")
		}

		// The stock read above is only advisory. The decrement re-checks
		// availability inside the same statement.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var current models.Product
			if err := tx.First(&current, "id = ?", productID).Error; err != nil {
				return fmt.Errorf("failed to re-read stock: %w", err)
			}
			return apperrors.NewInsufficientStock(current.Stock)
		}

		sale = models.Sale{
			ProductID: productID,
			Quantity:  quantity,
			Revenue:   product.Price * float64(quantity),
			Date:      time.Now().UTC(),
		}
		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, classifyTxError("record sale", err)
	}

	if err := s.db.Preload("Product").First(&sale, "id = ?", sale.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload sale: %w", err)
	}

	return &sale, nil
}

// DeleteSale removes the sale and restores the exact quantity to the
// product's stock atomically. No category permission is checked here: any
// authenticated admin may reverse any sale. That asymmetry with RecordSale is
// intentional-as-observed and pinned by a test, not an accident of this code.
func (s *SaleService) DeleteSale(principal authz.Principal, saleID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Sale")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Delete(&sale).Error; err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}

		res := tx.Model(&models.Product{}).
			Where("id = ?", sale.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", sale.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to restore stock: %w", res.Error)
		}

		return nil
	})
	if err != nil {
		return classifyTxError("delete sale", err)
	}

	return nil
}

// ListSales returns sales on products visible to the principal, newest first.
func (s *SaleService) ListSales(principal authz.Principal) ([]models.Sale, error) {
	filter := authz.VisibleCategoryFilter(principal)
	if filter.None {
		return []models.Sale{}, nil
	}

	query := s.db.Model(&models.Sale{}).
		Joins("JOIN products ON products.id = sales.product_id AND products.deleted_at IS NULL").
		Preload("Product").
		Order("date DESC")

	if !filter.All {
		query = query.Where("products.category IN ?", filter.Categories)
	}

	var sales []models.Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	return sales, nil
}

// classifyTxError keeps business errors intact and wraps everything else as a
// retryable transaction failure.
func classifyTxError(op string, err error) error {
	var appErr apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewTransactionFailure(op, err)
}
