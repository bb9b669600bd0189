// internal/services/analytics_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/authz"
	"github.com/storedash/backend/internal/cache"
	"github.com/storedash/backend/internal/models"
)

const dashboardStatsTTL = 60 * time.Second

type AnalyticsService struct {
	db    *gorm.DB
	cache cache.Client
}

// DashboardStats is the landing-page summary, computed over the caller's
// visible categories only.
type DashboardStats struct {
	TotalProducts   int              `json:"total_products"`
	TotalRevenue    float64          `json:"total_revenue"`
	TotalItemsSold  int              `json:"total_items_sold"`
	LowStockCount   int              `json:"low_stock_count"`
	TotalCategories int              `json:"total_categories"`
	StockStatus     StockBuckets     `json:"stock_status"`
	CategoryCounts  []CategoryCount  `json:"category_counts"`
	RecentProducts  []models.Product `json:"recent_products"`
}

// Analytics is the full reporting view behind the analytics page.
type Analytics struct {
	TotalProducts      int              `json:"total_products"`
	TotalRevenue       float64          `json:"total_revenue"`
	TotalItemsSold     int              `json:"total_items_sold"`
	TotalStock         int              `json:"total_stock"`
	MonthlyRevenue     []MonthlyRevenue `json:"monthly_revenue"`
	StockByCategory    []CategoryStock  `json:"stock_by_category"`
	ProductsByCategory []CategoryCount  `json:"products_by_category"`
	TopProducts        []TopProduct     `json:"top_products"`
	LowStockProducts   []models.Product `json:"low_stock_products"`
}

// NewAnalyticsService builds the service. cacheClient may be nil, in which
// case every request recomputes.
func NewAnalyticsService(db *gorm.DB, cacheClient cache.Client) *AnalyticsService {
	return &AnalyticsService{db: db, cache: cacheClient}
}

// GetDashboardStats computes the summary for the principal's scope. Results
// are cached per principal for a short window; scoping makes the cache key
// identity-sensitive, so one admin's numbers can never leak to another.
func (s *AnalyticsService) GetDashboardStats(ctx context.Context, principal authz.Principal) (*DashboardStats, error) {
	cacheKey := fmt.Sprintf("dashboard:stats:%s", principal.ID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var stats DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		} else if err != cache.ErrCacheMiss {
			logrus.WithError(err).Warn("Dashboard stats cache read failed")
		}
	}

	products, sales, err := s.loadScoped(principal)
	if err != nil {
		return nil, err
	}

	buckets := bucketStock(products)
	stats := &DashboardStats{
		TotalProducts:   len(products),
		TotalRevenue:    totalRevenue(sales),
		TotalItemsSold:  totalItemsSold(sales),
		LowStockCount:   buckets.LowStock + buckets.OutOfStock,
		TotalCategories: len(countByCategory(products)),
		StockStatus:     buckets,
		CategoryCounts:  countByCategory(products),
		RecentProducts:  recentProducts(products, 5),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, dashboardStatsTTL); err != nil {
				logrus.WithError(err).Warn("Dashboard stats cache write failed")
			}
		}
	}

	return stats, nil
}

func (s *AnalyticsService) GetAnalytics(principal authz.Principal) (*Analytics, error) {
	products, sales, err := s.loadScoped(principal)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		TotalProducts:      len(products),
		TotalRevenue:       totalRevenue(sales),
		TotalItemsSold:     totalItemsSold(sales),
		TotalStock:         totalStock(products),
		MonthlyRevenue:     monthlyRevenueSeries(sales),
		StockByCategory:    stockByCategory(products),
		ProductsByCategory: countByCategory(products),
		TopProducts:        topProductsByRevenue(sales, 5),
		LowStockProducts:   lowStockProducts(products),
	}, nil
}

// loadScoped fetches the principal's visible products and their sales. Both
// aggregations run over the same snapshot of rows.
func (s *AnalyticsService) loadScoped(principal authz.Principal) ([]models.Product, []models.Sale, error) {
	filter := authz.VisibleCategoryFilter(principal)
	if filter.None {
		return []models.Product{}, []models.Sale{}, nil
	}

	productQuery, _ := applyCategoryScope(s.db.Model(&models.Product{}), filter, "category")
	var products []models.Product
	if err := productQuery.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	saleQuery := s.db.Model(&models.Sale{}).
		Joins("JOIN products ON products.id = sales.product_id AND products.deleted_at IS NULL").
		Preload("Product").
		Order("date DESC")
	if !filter.All {
		saleQuery = saleQuery.Where("products.category IN ?", filter.Categories)
	}
	var sales []models.Sale
	if err := saleQuery.Find(&sales).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	return products, sales, nil
}

func recentProducts(products []models.Product, n int) []models.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}
