// internal/services/aggregate.go
package services

import (
	"sort"
	"time"

	"github.com/storedash/backend/internal/models"
)

// lowStockThreshold splits "low stock" from "in stock". A product with zero
// stock is out of stock, not low.
const lowStockThreshold = 10

type StockBuckets struct {
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

type CategoryCount struct {
	Category models.CategoryName `json:"category"`
	Count    int                 `json:"count"`
}

type CategoryStock struct {
	Category models.CategoryName `json:"category"`
	Stock    int                 `json:"stock"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type TopProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Revenue   float64 `json:"revenue"`
	UnitsSold int     `json:"units_sold"`
}

func bucketStock(products []models.Product) StockBuckets {
	var buckets StockBuckets
	for _, p := range products {
		switch {
		case p.Stock == 0:
			buckets.OutOfStock++
		case p.Stock <= lowStockThreshold:
			buckets.LowStock++
		default:
			buckets.InStock++
		}
	}
	return buckets
}

func countByCategory(products []models.Product) []CategoryCount {
	counts := make(map[models.CategoryName]int)
	for _, p := range products {
		counts[p.Category]++
	}

	result := make([]CategoryCount, 0, len(counts))
	for _, category := range models.Categories() {
		if n, ok := counts[category]; ok {
			result = append(result, CategoryCount{Category: category, Count: n})
		}
	}
	return result
}

func stockByCategory(products []models.Product) []CategoryStock {
	totals := make(map[models.CategoryName]int)
	for _, p := range products {
		totals[p.Category] += p.Stock
	}

	result := make([]CategoryStock, 0, len(totals))
	for _, category := range models.Categories() {
		if stock, ok := totals[category]; ok {
			result = append(result, CategoryStock{Category: category, Stock: stock})
		}
	}
	return result
}

func totalStock(products []models.Product) int {
	total := 0
	for _, p := range products {
		total += p.Stock
	}
	return total
}

func lowStockProducts(products []models.Product) []models.Product {
	low := []models.Product{}
	for _, p := range products {
		if p.Stock <= lowStockThreshold {
			low = append(low, p)
		}
	}
	return low
}

func totalRevenue(sales []models.Sale) float64 {
	total := 0.0
	for _, s := range sales {
		total += s.Revenue
	}
	return total
}

func totalItemsSold(sales []models.Sale) int {
	total := 0
	for _, s := range sales {
		total += s.Quantity
	}
	return total
}

// monthlyRevenueSeries groups sale revenue by calendar month, oldest first.
// Months with no sales are absent rather than zero-filled.
func monthlyRevenueSeries(sales []models.Sale) []MonthlyRevenue {
	type monthKey struct {
		year  int
		month time.Month
	}

	totals := make(map[monthKey]float64)
	for _, s := range sales {
		k := monthKey{year: s.Date.Year(), month: s.Date.Month()}
		totals[k] += s.Revenue
	}

	keys := make([]monthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	series := make([]MonthlyRevenue, 0, len(keys))
	for _, k := range keys {
		label := time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		series = append(series, MonthlyRevenue{Month: label, Revenue: totals[k]})
	}
	return series
}

// topProductsByRevenue ranks products by total sale revenue and keeps the
// first n. Ties keep the order products were first seen in the sales list.
func topProductsByRevenue(sales []models.Sale, n int) []TopProduct {
	index := make(map[string]int)
	ranked := []TopProduct{}

	for _, s := range sales {
		id := s.ProductID.String()
		i, seen := index[id]
		if !seen {
			name := ""
			if s.Product != nil {
				name = s.Product.Name
			}
			index[id] = len(ranked)
			ranked = append(ranked, TopProduct{ProductID: id, Name: name})
			i = index[id]
		}
		ranked[i].Revenue += s.Revenue
		ranked[i].UnitsSold += s.Quantity
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
