package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	cartdomain "github.com/example/storefront-demo/domain/cart"
	"github.com/example/storefront-demo/domain/catalog"
	domain "github.com/example/storefront-demo/domain/order"
	"github.com/example/storefront-demo/modules/cart"
	"github.com/example/storefront-demo/modules/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCart implements cart.CartPort over a fixed list of lines.
type fakeCart struct {
	items       []cartdomain.LineItem
	cleared     bool
	takeErr     error
	staleTotals bool
}

func (f *fakeCart) state() *cart.CartResponse {
	resp := &cart.CartResponse{
		Items:     f.items,
		Total:     cartdomain.Total(f.items),
		ItemCount: cartdomain.Count(f.items),
	}
	if f.staleTotals {
		resp.Total, resp.ItemCount = 1, 1
	}
	return resp
}

func (f *fakeCart) GetCart(context.Context) (*cart.CartResponse, error) {
	return f.state(), nil
}

func (f *fakeCart) AddItem(context.Context, catalog.Product, int) (*cart.AddItemResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCart) RemoveItem(context.Context, string) (*cart.CartResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCart) UpdateQuantity(context.Context, string, int) (*cart.CartResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCart) ClearCart(context.Context) (*cart.CartResponse, error) {
	f.cleared = true
	f.items = nil
	return &cart.CartResponse{}, nil
}

func (f *fakeCart) TakeCart(context.Context) (*cart.CartResponse, error) {
	if f.takeErr != nil {
		return nil, f.takeErr
	}
	resp := f.state()
	if len(f.items) > 0 {
		f.cleared = true
	}
	f.items = nil
	return resp, nil
}

func validCustomer() domain.Customer {
	return domain.Customer{
		Name:    "Asha",
		Email:   "asha@example.com",
		Phone:   "9999999999",
		Address: "12 MG Road",
	}
}

func twoLines() []cartdomain.LineItem {
	return []cartdomain.LineItem{
		{Product: catalog.Product{ID: "1", Price: 100}, Quantity: 2, CartID: "1-a"},
		{Product: catalog.Product{ID: "2", Price: 50}, Quantity: 3, CartID: "2-b"},
	}
}

func TestCheckout_Place(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	book := NewBook(kv, &mockLogger{})
	fc := &fakeCart{items: twoLines()}

	checkout, err := NewCheckout(book, fc, 5)
	require.NoError(t, err)
	now := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	checkout.now = func() time.Time { return now }

	placed, err := checkout.Place(ctx, validCustomer())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(placed.ID, "ORD-"))
	assert.Regexp(t, `^ORD-[0-9A-Z]{10}$`, placed.ID)
	assert.Equal(t, domain.StatusConfirmed, placed.Status)
	assert.Equal(t, 350.0, placed.Total)
	assert.Len(t, placed.Items, 2)
	assert.Equal(t, now, placed.Date)
	assert.Equal(t, now.AddDate(0, 0, 5), placed.EstimatedDelivery)
	assert.True(t, fc.cleared)

	stored := persistedOrders(t, kv)
	require.Len(t, stored, 1)
	assert.Equal(t, placed.ID, stored[0].ID)
}

func TestCheckout_Place_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		items    []cartdomain.LineItem
		customer func(c *domain.Customer)
		wantErr  error
	}{
		{name: "empty cart", items: nil, customer: func(*domain.Customer) {}, wantErr: ErrEmptyCart},
		{name: "missing name", items: twoLines(), customer: func(c *domain.Customer) { c.Name = "  " }, wantErr: ErrInvalidCustomer},
		{name: "missing email", items: twoLines(), customer: func(c *domain.Customer) { c.Email = "" }, wantErr: ErrInvalidCustomer},
		{name: "bad email", items: twoLines(), customer: func(c *domain.Customer) { c.Email = "asha" }, wantErr: ErrInvalidCustomer},
		{name: "missing phone", items: twoLines(), customer: func(c *domain.Customer) { c.Phone = "" }, wantErr: ErrInvalidCustomer},
		{name: "missing address", items: twoLines(), customer: func(c *domain.Customer) { c.Address = "" }, wantErr: ErrInvalidCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := NewBook(kvstore.NewMemoryStore(), &mockLogger{})
			fc := &fakeCart{items: tt.items}
			checkout, err := NewCheckout(book, fc, 0)
			require.NoError(t, err)

			customer := validCustomer()
			tt.customer(&customer)

			_, err = checkout.Place(ctx, customer)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, book.List())
			assert.False(t, fc.cleared)
		})
	}
}

func TestCheckout_DefaultDeliveryDays(t *testing.T) {
	checkout, err := NewCheckout(NewBook(kvstore.NewMemoryStore(), &mockLogger{}), &fakeCart{}, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDeliveryDays, checkout.deliveryDays)
}

func TestCheckout_TakeFailurePlacesNothing(t *testing.T) {
	ctx := context.Background()
	book := NewBook(kvstore.NewMemoryStore(), &mockLogger{})
	fc := &fakeCart{items: twoLines(), takeErr: errors.New("nats timeout")}
	checkout, err := NewCheckout(book, fc, 5)
	require.NoError(t, err)

	_, err = checkout.Place(ctx, validCustomer())
	assert.Error(t, err)
	assert.Empty(t, book.List())
	assert.Len(t, fc.items, 2)
}

func TestCheckout_TotalFollowsItems(t *testing.T) {
	ctx := context.Background()
	book := NewBook(kvstore.NewMemoryStore(), &mockLogger{})
	fc := &fakeCart{items: twoLines(), staleTotals: true}
	checkout, err := NewCheckout(book, fc, 5)
	require.NoError(t, err)

	placed, err := checkout.Place(ctx, validCustomer())
	require.NoError(t, err)
	assert.Equal(t, 350.0, placed.Total)
	assert.Equal(t, cartdomain.Total(placed.Items), placed.Total)
	assert.Equal(t, 350.0, book.List()[0].Total)
}
