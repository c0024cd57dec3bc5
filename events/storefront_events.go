// Package events holds the typed event definitions shared between storefront modules.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CartUpdatedEvent is emitted after every cart mutation with the resulting totals.
type CartUpdatedEvent struct {
	Action    string    `json:"action"`
	CartID    string    `json:"cart_id,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	ItemCount int       `json:"item_count"`
	Total     float64   `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart actions carried by CartUpdatedEvent.
const (
	CartActionAdded           = "added"
	CartActionRemoved         = "removed"
	CartActionQuantityChanged = "quantity_changed"
	CartActionCleared         = "cleared"
)

// CartUpdatedV1 is the typed event definition for cart changes.
// Subject: events.cart.v1.cart-updated
var CartUpdatedV1 = helper.EventDefinition[CartUpdatedEvent](
	"cart", "CartUpdated", "v1",
)

// OrderPlacedEvent is emitted when checkout creates a new order.
type OrderPlacedEvent struct {
	OrderID           string    `json:"order_id"`
	CustomerName      string    `json:"customer_name"`
	CustomerEmail     string    `json:"customer_email"`
	ItemCount         int       `json:"item_count"`
	Total             float64   `json:"total"`
	PlacedAt          time.Time `json:"placed_at"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

// OrderPlacedV1 is the typed event definition for order placement.
// Subject: events.order.v1.order-placed
var OrderPlacedV1 = helper.EventDefinition[OrderPlacedEvent](
	"order", "OrderPlaced", "v1",
)

// OrderStatusChangedEvent is emitted when an administrator sets an order status.
type OrderStatusChangedEvent struct {
	OrderID        string    `json:"order_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	ChangedAt      time.Time `json:"changed_at"`
}

// OrderStatusChangedV1 is the typed event definition for status changes.
// Subject: events.order.v1.order-status-changed
var OrderStatusChangedV1 = helper.EventDefinition[OrderStatusChangedEvent](
	"order", "OrderStatusChanged", "v1",
)

// StockChangedEvent is emitted when a product's stock level moves.
type StockChangedEvent struct {
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	PreviousStock int       `json:"previous_stock"`
	Stock         int       `json:"stock"`
	LowStock      bool      `json:"low_stock"`
	ChangedAt     time.Time `json:"changed_at"`
}

// StockChangedV1 is the typed event definition for stock changes.
// Subject: events.catalog.v1.stock-changed
var StockChangedV1 = helper.EventDefinition[StockChangedEvent](
	"catalog", "StockChanged", "v1",
)
