package api

import (
	domain "github.com/example/storefront-demo/domain/catalog"
	orderdomain "github.com/example/storefront-demo/domain/order"
	"github.com/example/storefront-demo/modules/order"
)

// ErrorResponse is the API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NotFoundResponse points the client back to the listing it came from.
type NotFoundResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Back    string `json:"back"`
}

// HealthResponse is the API health response.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// CategoryListResponse is the API response for listing categories.
type CategoryListResponse struct {
	Categories []domain.Category `json:"categories"`
}

// ProductListResponse is the API response for the filtered product listing.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// AddToCartRequest is the API request to add a product to the cart.
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest is the API request to change a cart line quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest is the API request to place an order.
type CheckoutRequest struct {
	Customer orderdomain.Customer `json:"customer"`
}

// OrderListResponse is the API response for the order tracker.
type OrderListResponse struct {
	Orders []order.TrackedOrder `json:"orders"`
	Total  int                  `json:"total"`
}

// AdjustStockRequest is the API request to move a product's stock.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// UpdateProductRequest is the API request to edit a product.
type UpdateProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// SetStatusRequest is the API request to change an order status.
type SetStatusRequest struct {
	Status string `json:"status"`
}
