package cart

import (
	"context"

	domain "github.com/example/storefront-demo/domain/cart"
	"github.com/example/storefront-demo/domain/catalog"
)

// Service names registered by the cart module.
const (
	ServiceGetCart        = "get-cart"
	ServiceAddItem        = "add-item"
	ServiceRemoveItem     = "remove-item"
	ServiceUpdateQuantity = "update-quantity"
	ServiceClearCart      = "clear-cart"
	ServiceTakeCart       = "take-cart"
)

// GetCartRequest is the request for reading the cart.
type GetCartRequest struct{}

// CartResponse describes the full cart after an operation.
type CartResponse struct {
	Items     []domain.LineItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

// AddItemRequest adds Quantity separate lines for Product, one unit each.
type AddItemRequest struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// AddItemResponse is the response for adding to the cart.
type AddItemResponse struct {
	Added []domain.LineItem `json:"added"`
	Cart  CartResponse      `json:"cart"`
}

// RemoveItemRequest is the request for removing a line.
type RemoveItemRequest struct {
	CartID string `json:"cart_id"`
}

// UpdateQuantityRequest is the request for changing a line's quantity.
type UpdateQuantityRequest struct {
	CartID   string `json:"cart_id"`
	Quantity int    `json:"quantity"`
}

// ClearCartRequest is the request for emptying the cart.
type ClearCartRequest struct{}

// TakeCartRequest is the request for emptying the cart and returning its lines.
type TakeCartRequest struct{}

// CartPort defines the interface for cart operations (hexagonal port).
type CartPort interface {
	GetCart(ctx context.Context) (*CartResponse, error)
	AddItem(ctx context.Context, product catalog.Product, quantity int) (*AddItemResponse, error)
	RemoveItem(ctx context.Context, cartID string) (*CartResponse, error)
	UpdateQuantity(ctx context.Context, cartID string, quantity int) (*CartResponse, error)
	ClearCart(ctx context.Context) (*CartResponse, error)
	TakeCart(ctx context.Context) (*CartResponse, error)
}
