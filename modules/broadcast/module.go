package broadcast

import (
	"context"
	"fmt"

	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Update types pushed to websocket clients.
const (
	UpdateCart        = "cart_updated"
	UpdateOrderPlaced = "order_placed"
	UpdateOrderStatus = "order_status_changed"
	UpdateStock       = "stock_changed"
)

// BroadcastModule is an EventConsumerModule that pushes store events to WebSocket clients.
type BroadcastModule struct {
	hub       *Hub
	cancelHub context.CancelFunc
	logger    types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*BroadcastModule)(nil)
	_ mono.EventConsumerModule   = (*BroadcastModule)(nil)
	_ mono.HealthCheckableModule = (*BroadcastModule)(nil)
)

// NewModule creates a new BroadcastModule.
func NewModule(logger types.Logger) *BroadcastModule {
	return &BroadcastModule{
		hub:    NewHub(logger),
		logger: logger,
	}
}

// Name returns the module name.
func (m *BroadcastModule) Name() string {
	return "broadcast"
}

// Start starts the hub loop.
func (m *BroadcastModule) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelHub = cancel
	go m.hub.Run(ctx)
	m.logger.Info("Broadcast module started - WebSocket hub running")
	return nil
}

// Stop shuts down the hub and waits for it to finish.
func (m *BroadcastModule) Stop(_ context.Context) error {
	clientCount := m.hub.ClientCount()
	if m.cancelHub != nil {
		m.cancelHub()
		m.hub.Wait()
	}
	m.logger.Info("Broadcast module stopped", "clients", clientCount)
	return nil
}

// Health returns the health status.
func (m *BroadcastModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
		},
	}
}

// RegisterEventConsumers registers event handlers.
func (m *BroadcastModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.CartUpdatedV1, m.handleCartUpdated, m,
	); err != nil {
		return fmt.Errorf("failed to register CartUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(
		registry, events.OrderPlacedV1, m.handleOrderPlaced, m,
	); err != nil {
		return fmt.Errorf("failed to register OrderPlaced consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(
		registry, events.OrderStatusChangedV1, m.handleOrderStatusChanged, m,
	); err != nil {
		return fmt.Errorf("failed to register OrderStatusChanged consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(
		registry, events.StockChangedV1, m.handleStockChanged, m,
	); err != nil {
		return fmt.Errorf("failed to register StockChanged consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"CartUpdated", "OrderPlaced", "OrderStatusChanged", "StockChanged"})
	return nil
}

func (m *BroadcastModule) handleCartUpdated(_ context.Context, event events.CartUpdatedEvent, _ *mono.Msg) error {
	m.hub.Broadcast(UpdateCart, event)
	return nil
}

func (m *BroadcastModule) handleOrderPlaced(_ context.Context, event events.OrderPlacedEvent, _ *mono.Msg) error {
	m.hub.Broadcast(UpdateOrderPlaced, event)
	return nil
}

func (m *BroadcastModule) handleOrderStatusChanged(_ context.Context, event events.OrderStatusChangedEvent, _ *mono.Msg) error {
	m.hub.Broadcast(UpdateOrderStatus, event)
	return nil
}

func (m *BroadcastModule) handleStockChanged(_ context.Context, event events.StockChangedEvent, _ *mono.Msg) error {
	m.hub.Broadcast(UpdateStock, event)
	return nil
}

// GetHub returns the WebSocket hub for the API module to use.
func (m *BroadcastModule) GetHub() *Hub {
	return m.hub
}
