package catalog

import (
	"context"

	domain "github.com/example/storefront-demo/domain/catalog"
)

// Service names registered by the catalog module.
const (
	ServiceListProducts   = "list-products"
	ServiceListCategories = "list-categories"
	ServiceGetProduct     = "get-product"
	ServiceAdjustStock    = "adjust-stock"
	ServiceUpdateProduct  = "update-product"
)

// ListProductsRequest filters the listing. Empty fields match everything.
type ListProductsRequest struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
}

// ListProductsResponse is the filtered listing.
type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// ListCategoriesRequest is the request for listing categories.
type ListCategoriesRequest struct{}

// ListCategoriesResponse is the response for listing categories.
type ListCategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// GetProductRequest is the request for getting one product.
type GetProductRequest struct {
	ProductID string `json:"product_id"`
}

// ProductResponse carries one product, or Found=false for unknown ids.
type ProductResponse struct {
	Product *domain.Product `json:"product,omitempty"`
	Found   bool            `json:"found"`
}

// AdjustStockRequest changes stock by Delta.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
}

// UpdateProductRequest applies an administrator edit.
type UpdateProductRequest struct {
	ProductID string `json:"product_id"`
	Edit
}

// CatalogPort defines the interface for catalog operations (hexagonal port).
type CatalogPort interface {
	ListProducts(ctx context.Context, search, category string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	AdjustStock(ctx context.Context, productID string, delta int) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, edit Edit) (*domain.Product, error)
}
