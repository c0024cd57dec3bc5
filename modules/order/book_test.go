package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	cartdomain "github.com/example/storefront-demo/domain/cart"
	"github.com/example/storefront-demo/domain/catalog"
	domain "github.com/example/storefront-demo/domain/order"
	"github.com/example/storefront-demo/modules/kvstore"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct {
	warnings int
}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  { m.warnings++ }
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

func sampleOrder(id string) domain.Order {
	placed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return domain.Order{
		ID: id,
		Items: []cartdomain.LineItem{
			{Product: catalog.Product{ID: "1", Name: "P1", Price: 100}, Quantity: 2, CartID: "1-a"},
		},
		Total: 200,
		Customer: domain.Customer{
			Name:    "Asha",
			Email:   "asha@example.com",
			Phone:   "9999999999",
			Address: "12 MG Road",
		},
		Status:            domain.StatusConfirmed,
		Date:              placed,
		EstimatedDelivery: placed.AddDate(0, 0, 5),
	}
}

func persistedOrders(t *testing.T, kv kvstore.KVStore) []domain.Order {
	t.Helper()
	data, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(data, &orders))
	return orders
}

func TestBook_SetStatus_SkipsStages(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	book := NewBook(kv, &mockLogger{})

	original := sampleOrder("ORD-1")
	book.Place(ctx, original)
	book.Place(ctx, sampleOrder("ORD-2"))

	updated, previous, err := book.SetStatus(ctx, "ORD-1", domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, previous)
	assert.Equal(t, domain.StatusDelivered, updated.Status)

	stored := persistedOrders(t, kv)
	require.Len(t, stored, 2)

	want := original
	want.Status = domain.StatusDelivered
	assert.True(t, want.Date.Equal(stored[0].Date))
	assert.True(t, want.EstimatedDelivery.Equal(stored[0].EstimatedDelivery))
	stored[0].Date, stored[0].EstimatedDelivery = want.Date, want.EstimatedDelivery
	assert.Equal(t, want, stored[0])

	assert.Equal(t, domain.StatusConfirmed, stored[1].Status)
}

func TestBook_SetStatus_Backwards(t *testing.T) {
	ctx := context.Background()
	book := NewBook(kvstore.NewMemoryStore(), &mockLogger{})
	book.Place(ctx, sampleOrder("ORD-1"))

	_, _, err := book.SetStatus(ctx, "ORD-1", domain.StatusShipped)
	require.NoError(t, err)
	updated, previous, err := book.SetStatus(ctx, "ORD-1", domain.StatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusShipped, previous)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
}

func TestBook_SetStatus_Errors(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	book := NewBook(kv, &mockLogger{})
	book.Place(ctx, sampleOrder("ORD-1"))

	tests := []struct {
		name    string
		id      string
		status  domain.Status
		wantErr error
	}{
		{name: "unknown order", id: "ORD-404", status: domain.StatusShipped, wantErr: ErrOrderNotFound},
		{name: "unknown status", id: "ORD-1", status: "cancelled", wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := book.SetStatus(ctx, tt.id, tt.status)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SetStatus() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	stored := persistedOrders(t, kv)
	assert.Equal(t, domain.StatusConfirmed, stored[0].Status)
}

func TestBook_Get(t *testing.T) {
	ctx := context.Background()
	book := NewBook(kvstore.NewMemoryStore(), &mockLogger{})
	book.Place(ctx, sampleOrder("ORD-1"))

	got, err := book.Get("ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", got.ID)

	got.Items[0].Quantity = 50
	again, _ := book.Get("ORD-1")
	assert.Equal(t, 2, again.Items[0].Quantity)

	_, err = book.Get("missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestBook_Load(t *testing.T) {
	ctx := context.Background()

	valid, err := json.Marshal([]domain.Order{sampleOrder("ORD-1")})
	require.NoError(t, err)

	tests := []struct {
		name       string
		stored     []byte
		wantOrders int
		wantWarn   bool
	}{
		{name: "missing key", stored: nil, wantOrders: 0},
		{name: "malformed", stored: []byte("[{"), wantOrders: 0, wantWarn: true},
		{name: "bad timestamp", stored: []byte(`[{"id":"x","date":"yesterday"}]`), wantOrders: 0, wantWarn: true},
		{name: "valid", stored: valid, wantOrders: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemoryStore()
			if tt.stored != nil {
				require.NoError(t, kv.Put(ctx, StorageKey, tt.stored))
			}
			logger := &mockLogger{}
			book := NewBook(kv, logger)

			book.Load(ctx)

			assert.Len(t, book.List(), tt.wantOrders)
			assert.NotNil(t, book.List())
			assert.Equal(t, tt.wantWarn, logger.warnings > 0)
		})
	}
}

func TestBook_Subscribe(t *testing.T) {
	ctx := context.Background()
	book := NewBook(kvstore.NewMemoryStore(), &mockLogger{})

	var seen []int
	unsubscribe := book.Subscribe(func(orders []domain.Order) {
		seen = append(seen, len(orders))
	})

	book.Place(ctx, sampleOrder("ORD-1"))
	_, _, _ = book.SetStatus(ctx, "ORD-1", domain.StatusProcessing)
	_, _, _ = book.SetStatus(ctx, "ORD-404", domain.StatusProcessing)

	assert.Equal(t, []int{1, 1}, seen)

	unsubscribe()
	book.Place(ctx, sampleOrder("ORD-2"))
	assert.Len(t, seen, 2)
}
