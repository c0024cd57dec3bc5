// Package admin serves the storefront dashboard figures.
package admin

import (
	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/modules/order"
)

// Stats is the dashboard summary.
type Stats struct {
	TotalRevenue     float64          `json:"total_revenue"`
	TotalOrders      int              `json:"total_orders"`
	TotalProducts    int              `json:"total_products"`
	LowStock         int              `json:"low_stock"`
	LowStockProducts []domain.Product `json:"low_stock_products"`
	OrdersByStatus   map[string]int   `json:"orders_by_status"`
}

// ComputeStats summarises products and orders. A product is low on stock when it
// has fewer than threshold units.
func ComputeStats(products []domain.Product, orders []order.TrackedOrder, threshold int) Stats {
	stats := Stats{
		TotalOrders:      len(orders),
		TotalProducts:    len(products),
		LowStockProducts: []domain.Product{},
		OrdersByStatus:   make(map[string]int),
	}

	for _, o := range orders {
		stats.TotalRevenue += o.Total
		stats.OrdersByStatus[string(o.Status)]++
	}

	for _, p := range products {
		if p.Stock < threshold {
			stats.LowStockProducts = append(stats.LowStockProducts, p)
		}
	}
	stats.LowStock = len(stats.LowStockProducts)

	return stats
}
