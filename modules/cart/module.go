package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	domain "github.com/example/storefront-demo/domain/cart"
	"github.com/example/storefront-demo/events"
	"github.com/example/storefront-demo/modules/kvstore"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// StoreProvider hands out the persistence backend once the kvstore module has started.
type StoreProvider interface {
	Store() kvstore.KVStore
}

// Module provides the cart services.
type Module struct {
	provider    StoreProvider
	store       *Store
	eventBus    mono.EventBus
	logger      types.Logger
	unsubscribe func()
	lastChange  atomic.Int64
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

// NewModule creates a new cart module.
func NewModule(provider StoreProvider, logger types.Logger) *Module {
	return &Module{
		provider: provider,
		logger:   logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cart"
}

// Dependencies returns the list of module dependencies. The kvstore module
// must be started before the cart can be restored.
func (m *Module) Dependencies() []string {
	return []string{"kvstore"}
}

// SetDependencyServiceContainer is a no-op. The store is reached through the provider.
func (m *Module) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CartUpdatedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetCart, json.Unmarshal, json.Marshal, m.getCart,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetCart, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAddItem, json.Unmarshal, json.Marshal, m.addItem,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAddItem, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceRemoveItem, json.Unmarshal, json.Marshal, m.removeItem,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceRemoveItem, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdateQuantity, json.Unmarshal, json.Marshal, m.updateQuantity,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdateQuantity, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceClearCart, json.Unmarshal, json.Marshal, m.clearCart,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceClearCart, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceTakeCart, json.Unmarshal, json.Marshal, m.takeCart,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceTakeCart, err)
	}

	m.logger.Info("Registered cart services",
		"services", []string{ServiceGetCart, ServiceAddItem, ServiceRemoveItem, ServiceUpdateQuantity, ServiceClearCart, ServiceTakeCart})
	return nil
}

// Start restores the persisted cart.
func (m *Module) Start(ctx context.Context) error {
	if m.provider == nil || m.provider.Store() == nil {
		return fmt.Errorf("kv store dependency not set")
	}

	newID, err := NewIDGenerator()
	if err != nil {
		return err
	}

	m.store = NewStore(m.provider.Store(), newID, m.logger)
	m.store.Load(ctx)
	m.unsubscribe = m.store.Subscribe(func([]domain.LineItem) {
		m.lastChange.Store(time.Now().UnixNano())
	})

	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, cart events will not be published")
	}

	m.logger.Info("Cart module started",
		"lines", len(m.store.Items()),
		"items", m.store.ItemCount())
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.logger.Info("Cart module stopped")
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "cart store not initialized",
		}
	}

	details := map[string]any{
		"lines": len(m.store.Items()),
		"items": m.store.ItemCount(),
	}
	if ts := m.lastChange.Load(); ts > 0 {
		details["last_change"] = time.Unix(0, ts).UTC().Format(time.RFC3339)
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// Store returns the cart store. It is nil before Start.
func (m *Module) Store() *Store {
	return m.store
}
