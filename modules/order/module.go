package order

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/storefront-demo/domain/order"
	"github.com/example/storefront-demo/events"
	"github.com/example/storefront-demo/modules/cart"
	"github.com/example/storefront-demo/modules/kvstore"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// StoreProvider hands out the persistence backend once the kvstore module has started.
type StoreProvider interface {
	Store() kvstore.KVStore
}

// Module provides order placement, tracking and status services.
type Module struct {
	provider     StoreProvider
	cartPort     cart.CartPort
	book         *Book
	checkout     *Checkout
	deliveryDays int
	eventBus     mono.EventBus
	logger       types.Logger
	unsubscribe  func()
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new order module.
func NewModule(provider StoreProvider, deliveryDays int, logger types.Logger) *Module {
	return &Module{
		provider:     provider,
		deliveryDays: deliveryDays,
		logger:       logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "order"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"kvstore", "cart"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "cart" {
		m.cartPort = cart.NewCartAdapter(container)
	}
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OrderPlacedV1.ToBase(),
		events.OrderStatusChangedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServicePlaceOrder, json.Unmarshal, json.Marshal, m.placeOrder,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServicePlaceOrder, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListOrders, json.Unmarshal, json.Marshal, m.listOrders,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListOrders, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetOrder, json.Unmarshal, json.Marshal, m.getOrder,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetOrder, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceSetStatus, json.Unmarshal, json.Marshal, m.setStatus,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceSetStatus, err)
	}

	m.logger.Info("Registered order services",
		"services", []string{ServicePlaceOrder, ServiceListOrders, ServiceGetOrder, ServiceSetStatus})
	return nil
}

// Start restores persisted orders and prepares checkout.
func (m *Module) Start(ctx context.Context) error {
	if m.cartPort == nil {
		return fmt.Errorf("cart dependency not set")
	}
	if m.provider == nil || m.provider.Store() == nil {
		return fmt.Errorf("kv store dependency not set")
	}

	m.book = NewBook(m.provider.Store(), m.logger)
	m.book.Load(ctx)
	m.unsubscribe = m.book.Subscribe(func(orders []domain.Order) {
		m.logger.Debug("Order book changed", "orders", len(orders))
	})

	checkout, err := NewCheckout(m.book, m.cartPort, m.deliveryDays)
	if err != nil {
		return err
	}
	m.checkout = checkout

	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, order events will not be published")
	}

	m.logger.Info("Order module started",
		"orders", len(m.book.List()),
		"deliveryDays", checkout.deliveryDays)
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.logger.Info("Order module stopped")
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.book == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "order book not initialized",
		}
	}

	byStatus := make(map[string]int)
	for _, o := range m.book.List() {
		byStatus[string(o.Status)]++
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"orders":    len(m.book.List()),
			"by_status": byStatus,
		},
	}
}

// Book returns the order book. It is nil before Start.
func (m *Module) Book() *Book {
	return m.book
}
