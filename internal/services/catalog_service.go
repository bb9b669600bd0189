// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/apperrors"
	"github.com/storedash/backend/internal/authz"
	"github.com/storedash/backend/internal/models"
	"github.com/storedash/backend/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name        string              `json:"name" validate:"required,min=3,max=100"`
	Description string              `json:"description" validate:"omitempty,max=1000"`
	Category    models.CategoryName `json:"category" validate:"required"`
	Price       float64             `json:"price" validate:"required,gt=0"`
	Stock       int                 `json:"stock" validate:"gte=0"`
	Images      []string            `json:"images,omitempty"`
}

type UpdateProductRequest struct {
	Name        string              `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string             `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    models.CategoryName `json:"category,omitempty"`
	Price       *float64            `json:"price,omitempty"`
	Stock       *int                `json:"stock,omitempty"`
	Images      []string            `json:"images,omitempty"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListProducts returns the products visible to the principal, newest first.
// An admin with no assigned categories gets an empty list, never the full
// catalog.
func (s *CatalogService) ListProducts(principal authz.Principal, params utils.PaginationParams) ([]models.Product, int64, error) {
	filter := authz.VisibleCategoryFilter(principal)

	query, visible := applyCategoryScope(s.db.Model(&models.Product{}), filter, "category")
	if !visible {
		return []models.Product{}, 0, nil
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "stock"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// GetProduct hides products outside the principal's scope behind NotFound so
// the response does not reveal whether the id exists.
func (s *CatalogService) GetProduct(principal authz.Principal, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !authz.VisibleCategoryFilter(principal).Matches(product.Category) {
		return nil, apperrors.NewNotFound("Product")
	}

	return &product, nil
}

func (s *CatalogService) CreateProduct(principal authz.Principal, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	if !req.Category.IsValid() {
		return nil, apperrors.NewValidation(fmt.Sprintf("Unknown category %q", req.Category))
	}

	if !authz.CanWriteCategory(principal, req.Category) {
		return nil, apperrors.NewForbidden(
			fmt.Sprintf("You don't have permission to add products in %s category", req.Category))
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Images:      models.StringList(req.Images),
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct requires write permission on both the product's current
// category and, when the update moves it, the target category.
func (s *CatalogService) UpdateProduct(principal authz.Principal, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !authz.CanWriteCategory(principal, product.Category) {
		return nil, apperrors.NewForbidden(
			fmt.Sprintf("You don't have permission to edit products in %s category", product.Category))
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != "" && req.Category != product.Category {
		if !req.Category.IsValid() {
			return nil, apperrors.NewValidation(fmt.Sprintf("Unknown category %q", req.Category))
		}
		if !authz.CanWriteCategory(principal, req.Category) {
			return nil, apperrors.NewForbidden(
				fmt.Sprintf("You don't have permission to add products in %s category", req.Category))
		}
		updates["category"] = req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperrors.NewValidation("Price must be a positive number")
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperrors.NewValidation("Stock must be 0 or more")
		}
		updates["stock"] = *req.Stock
	}
	if req.Images != nil {
		updates["images"] = models.StringList(req.Images)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	return &product, nil
}

func (s *CatalogService) DeleteProduct(principal authz.Principal, id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Product")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !authz.CanWriteCategory(principal, product.Category) {
		return apperrors.NewForbidden(
			fmt.Sprintf("You don't have permission to delete products in %s category", product.Category))
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func validationError(err error) error {
	if details := utils.GetValidationErrors(err); len(details) > 0 {
		return apperrors.NewValidation(details[0].Message)
	}
	return apperrors.NewValidation(err.Error())
}
