package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono/pkg/types"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
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

func TestFeed_RecentNewestFirst(t *testing.T) {
	feed := NewFeed(10)
	now := time.Now()
	for i := 0; i < 3; i++ {
		feed.Record("t", fmt.Sprintf("s%d", i), "m", now)
	}

	got := feed.Recent(2)
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d entries, want 2", len(got))
	}
	if got[0].Subject != "s2" || got[1].Subject != "s1" {
		t.Errorf("Recent(2) = [%s %s], want [s2 s1]", got[0].Subject, got[1].Subject)
	}
	if all := feed.Recent(0); len(all) != 3 {
		t.Errorf("Recent(0) returned %d entries, want 3", len(all))
	}
}

func TestFeed_Bounded(t *testing.T) {
	feed := NewFeed(3)
	for i := 0; i < 5; i++ {
		feed.Record("t", fmt.Sprintf("s%d", i), "m", time.Now())
	}

	if feed.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", feed.Len())
	}
	got := feed.Recent(0)
	if got[0].Subject != "s4" || got[2].Subject != "s2" {
		t.Errorf("Recent() = %v, want s4..s2", got)
	}
}

func TestFeed_DefaultCapacity(t *testing.T) {
	if NewFeed(0).capacity != DefaultCapacity {
		t.Errorf("NewFeed(0) capacity = %d, want %d", NewFeed(0).capacity, DefaultCapacity)
	}
}

func TestNotificationModule_Handlers(t *testing.T) {
	ctx := context.Background()
	m := NewModule(0, &mockLogger{})
	now := time.Now()

	tests := []struct {
		name     string
		handle   func() error
		wantType string
		wantSubj string
	}{
		{
			name: "cart updated",
			handle: func() error {
				return m.handleCartUpdated(ctx, events.CartUpdatedEvent{Action: "added", ProductID: "1", ItemCount: 1, Total: 2999, UpdatedAt: now}, nil)
			},
			wantType: TypeCart,
			wantSubj: "1",
		},
		{
			name: "order placed",
			handle: func() error {
				return m.handleOrderPlaced(ctx, events.OrderPlacedEvent{OrderID: "ORD-1", CustomerName: "Asha", Total: 350, PlacedAt: now}, nil)
			},
			wantType: TypeOrderPlaced,
			wantSubj: "ORD-1",
		},
		{
			name: "status changed",
			handle: func() error {
				return m.handleOrderStatusChanged(ctx, events.OrderStatusChangedEvent{OrderID: "ORD-1", PreviousStatus: "confirmed", Status: "delivered", ChangedAt: now}, nil)
			},
			wantType: TypeOrderStatus,
			wantSubj: "ORD-1",
		},
		{
			name: "stock changed",
			handle: func() error {
				return m.handleStockChanged(ctx, events.StockChangedEvent{ProductID: "8", ProductName: "Yoga Mat", PreviousStock: 5, Stock: 4, LowStock: true, ChangedAt: now}, nil)
			},
			wantType: TypeStockChanged,
			wantSubj: "8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.handle(); err != nil {
				t.Fatalf("handler error = %v", err)
			}
			latest := m.Feed().Recent(1)[0]
			if latest.Type != tt.wantType || latest.Subject != tt.wantSubj {
				t.Errorf("latest = {%s %s}, want {%s %s}", latest.Type, latest.Subject, tt.wantType, tt.wantSubj)
			}
			if latest.ID == "" {
				t.Error("activity ID should not be empty")
			}
		})
	}

	resp, err := m.listActivity(ctx, ListActivityRequest{Limit: 2}, nil)
	if err != nil {
		t.Fatalf("listActivity() error = %v", err)
	}
	if len(resp.Activities) != 2 || resp.Total != 4 {
		t.Errorf("listActivity(2) = %d entries, total %d; want 2, 4", len(resp.Activities), resp.Total)
	}
}
