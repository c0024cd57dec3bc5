package catalog

import (
	"context"
	"time"

	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono"
)

// listProducts handles the list-products service request.
func (m *Module) listProducts(_ context.Context, req ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	products := m.inventory.Products(req.Search, req.Category)
	return ListProductsResponse{
		Products: products,
		Total:    len(products),
	}, nil
}

// listCategories handles the list-categories service request.
func (m *Module) listCategories(_ context.Context, _ ListCategoriesRequest, _ *mono.Msg) (ListCategoriesResponse, error) {
	return ListCategoriesResponse{Categories: m.inventory.Categories()}, nil
}

// getProduct handles the get-product service request.
func (m *Module) getProduct(_ context.Context, req GetProductRequest, _ *mono.Msg) (ProductResponse, error) {
	p, err := m.inventory.Get(req.ProductID)
	if err != nil {
		return ProductResponse{Found: false}, nil
	}
	return ProductResponse{Product: &p, Found: true}, nil
}

// adjustStock handles the adjust-stock service request.
func (m *Module) adjustStock(_ context.Context, req AdjustStockRequest, _ *mono.Msg) (ProductResponse, error) {
	p, previous, err := m.inventory.AdjustStock(req.ProductID, req.Delta)
	if err != nil {
		return ProductResponse{Found: false}, nil
	}
	m.logger.Info("Stock adjusted",
		"productID", p.ID,
		"delta", req.Delta,
		"stock", p.Stock)
	m.publishStockChanged(p, previous)
	return ProductResponse{Product: &p, Found: true}, nil
}

// updateProduct handles the update-product service request.
func (m *Module) updateProduct(_ context.Context, req UpdateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	p, previous, err := m.inventory.Update(req.ProductID, req.Edit)
	if err != nil {
		return ProductResponse{Found: false}, nil
	}
	m.logger.Info("Product updated",
		"productID", p.ID,
		"name", p.Name,
		"price", p.Price,
		"stock", p.Stock)
	m.publishStockChanged(p, previous)
	return ProductResponse{Product: &p, Found: true}, nil
}

// publishStockChanged emits StockChanged when the stock level moved. Event
// publishing is best-effort.
func (m *Module) publishStockChanged(p domain.Product, previous int) {
	if m.eventBus == nil || p.Stock == previous {
		return
	}
	event := events.StockChangedEvent{
		ProductID:     p.ID,
		ProductName:   p.Name,
		PreviousStock: previous,
		Stock:         p.Stock,
		LowStock:      p.Stock < m.lowStockThreshold,
		ChangedAt:     time.Now(),
	}
	if err := events.StockChangedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish StockChanged event", "productID", p.ID, "error", err)
	}
}
