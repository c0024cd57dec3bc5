package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/storefront-demo/modules/catalog"
	"github.com/example/storefront-demo/modules/order"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// ServiceGetStats is the dashboard statistics service.
const ServiceGetStats = "get-stats"

// GetStatsRequest is the request for dashboard statistics.
type GetStatsRequest struct{}

// Module aggregates catalog and order data for the admin dashboard.
type Module struct {
	catalogPort       catalog.CatalogPort
	orderPort         order.OrderPort
	lowStockThreshold int
	logger            types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
)

// NewModule creates a new admin module.
func NewModule(lowStockThreshold int, logger types.Logger) *Module {
	if lowStockThreshold <= 0 {
		lowStockThreshold = catalog.DefaultLowStockThreshold
	}
	return &Module{
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "admin"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"catalog", "order"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalogPort = catalog.NewCatalogAdapter(container)
	case "order":
		m.orderPort = order.NewOrderAdapter(container)
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetStats, json.Unmarshal, json.Marshal, m.getStats,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetStats, err)
	}
	m.logger.Info("Registered admin services", "services", []string{ServiceGetStats})
	return nil
}

// Start verifies dependencies are wired.
func (m *Module) Start(_ context.Context) error {
	if m.catalogPort == nil {
		return fmt.Errorf("catalog dependency not set")
	}
	if m.orderPort == nil {
		return fmt.Errorf("order dependency not set")
	}
	m.logger.Info("Admin module started (depends on: catalog, order)")
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Admin module stopped")
	return nil
}

// getStats handles the get-stats service request.
func (m *Module) getStats(ctx context.Context, _ GetStatsRequest, _ *mono.Msg) (Stats, error) {
	products, err := m.catalogPort.ListProducts(ctx, "", "")
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list products: %w", err)
	}
	orders, err := m.orderPort.ListOrders(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list orders: %w", err)
	}
	return ComputeStats(products, orders, m.lowStockThreshold), nil
}
