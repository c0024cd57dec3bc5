package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// DefaultLowStockThreshold flags products with fewer units than this.
const DefaultLowStockThreshold = 10

// Module serves the product catalog and the admin inventory operations.
type Module struct {
	inventory         *Inventory
	lowStockThreshold int
	eventBus          mono.EventBus
	logger            types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a catalog module seeded with the default products.
func NewModule(lowStockThreshold int, logger types.Logger) *Module {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Module{
		inventory:         NewInventory(domain.DefaultProducts(), domain.DefaultCategories()),
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.StockChangedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListProducts, json.Unmarshal, json.Marshal, m.listProducts,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListProducts, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListCategories, json.Unmarshal, json.Marshal, m.listCategories,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListCategories, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetProduct, json.Unmarshal, json.Marshal, m.getProduct,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetProduct, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAdjustStock, json.Unmarshal, json.Marshal, m.adjustStock,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAdjustStock, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdateProduct, json.Unmarshal, json.Marshal, m.updateProduct,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdateProduct, err)
	}

	m.logger.Info("Registered catalog services",
		"services", []string{ServiceListProducts, ServiceListCategories, ServiceGetProduct, ServiceAdjustStock, ServiceUpdateProduct})
	return nil
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Catalog module started",
		"products", m.inventory.Count(),
		"lowStockThreshold", m.lowStockThreshold)
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Catalog module stopped")
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"products":  m.inventory.Count(),
			"low_stock": len(m.inventory.LowStock(m.lowStockThreshold)),
		},
	}
}

// Inventory returns the working catalog.
func (m *Module) Inventory() *Inventory {
	return m.inventory
}
