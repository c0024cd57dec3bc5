package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	domain "github.com/example/storefront-demo/domain/cart"
	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/modules/kvstore"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct {
	warnings int
	errors   int
}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  { m.warnings++ }
func (m *mockLogger) Error(_ string, _ ...any) { m.errors++ }
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

// failingKV rejects every write.
type failingKV struct {
	*kvstore.MemoryStore
}

func (f failingKV) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func newTestStore(t *testing.T) (*Store, *kvstore.MemoryStore) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	return NewStore(kv, sequentialIDs(), &mockLogger{}), kv
}

var (
	p1 = catalog.Product{ID: "1", Name: "P1", Price: 100, Stock: 10}
	p2 = catalog.Product{ID: "2", Name: "P2", Price: 50, Stock: 10}
)

func persisted(t *testing.T, kv kvstore.KVStore) []domain.LineItem {
	t.Helper()
	data, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	var items []domain.LineItem
	require.NoError(t, json.Unmarshal(data, &items))
	return items
}

func TestStore_AddToCart_OneLinePerCall(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for i := 0; i < 5; i++ {
		store.AddToCart(ctx, p1)
	}

	items := store.Items()
	require.Len(t, items, 5)

	seen := make(map[string]bool)
	for _, item := range items {
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, "1", item.ID)
		assert.False(t, seen[item.CartID], "duplicate cartId %s", item.CartID)
		seen[item.CartID] = true
	}
}

func TestStore_AddToCart_RealGeneratorUnique(t *testing.T) {
	ctx := context.Background()
	gen, err := NewIDGenerator()
	require.NoError(t, err)
	store := NewStore(kvstore.NewMemoryStore(), gen, &mockLogger{})

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		item := store.AddToCart(ctx, p2)
		assert.Regexp(t, `^2-[0-9a-z]{12}$`, item.CartID)
		assert.False(t, seen[item.CartID])
		seen[item.CartID] = true
	}
}

func TestStore_TotalScenario(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	store.AddToCart(ctx, p1)
	store.AddToCart(ctx, p1)
	line := store.AddToCart(ctx, p2)
	store.UpdateQuantity(ctx, line.CartID, 3)

	assert.Equal(t, 350.0, store.Total())
	assert.Equal(t, 5, store.ItemCount())
	assert.Len(t, store.Items(), 3)
	assert.Equal(t, 350.0, domain.Total(persisted(t, kv)))
}

func TestStore_UpdateQuantityZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()

	build := func() (*Store, string) {
		store, _ := newTestStore(t)
		store.AddToCart(ctx, p1)
		target := store.AddToCart(ctx, p2)
		store.AddToCart(ctx, p1)
		return store, target.CartID
	}

	a, idA := build()
	a.UpdateQuantity(ctx, idA, 0)

	b, idB := build()
	b.RemoveFromCart(ctx, idB)

	assert.Equal(t, b.Items(), a.Items())
	assert.Len(t, a.Items(), 2)
}

func TestStore_UpdateQuantityNegativeRemoves(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	line := store.AddToCart(ctx, p1)

	store.UpdateQuantity(ctx, line.CartID, -2)

	assert.Empty(t, store.Items())
}

func TestStore_UpdateQuantityNoUpperBound(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	line := store.AddToCart(ctx, p1)

	store.UpdateQuantity(ctx, line.CartID, 1000)

	assert.Equal(t, 1000, store.Items()[0].Quantity)
	assert.Equal(t, 100000.0, store.Total())
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	store.AddToCart(ctx, p1)

	store.RemoveFromCart(ctx, "does-not-exist")
	store.UpdateQuantity(ctx, "does-not-exist", 4)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_ClearCart(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	store.AddToCart(ctx, p1)
	store.AddToCart(ctx, p2)

	store.ClearCart(ctx)

	assert.Empty(t, store.Items())
	assert.Zero(t, store.Total())
	assert.Empty(t, persisted(t, kv))
}

func TestStore_TotalMatchesSumAfterMixedOps(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	a := store.AddToCart(ctx, p1)
	b := store.AddToCart(ctx, p2)
	store.AddToCart(ctx, catalog.Product{ID: "3", Price: 12.5})
	store.UpdateQuantity(ctx, b.CartID, 4)
	store.RemoveFromCart(ctx, a.CartID)

	var want float64
	for _, item := range store.Items() {
		want += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, want, store.Total())
	assert.Equal(t, 212.5, store.Total())
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		stored    *string
		wantLines int
		wantWarn  bool
	}{
		{name: "missing key", stored: nil, wantLines: 0},
		{name: "malformed json", stored: strPtr("{not json"), wantLines: 0, wantWarn: true},
		{name: "wrong shape", stored: strPtr(`{"id":"1"}`), wantLines: 0, wantWarn: true},
		{name: "null", stored: strPtr("null"), wantLines: 0},
		{
			name:      "valid",
			stored:    strPtr(`[{"id":"1","name":"P1","price":100,"quantity":2,"cartId":"1-abc"}]`),
			wantLines: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemoryStore()
			if tt.stored != nil {
				require.NoError(t, kv.Put(ctx, StorageKey, []byte(*tt.stored)))
			}
			logger := &mockLogger{}
			store := NewStore(kv, sequentialIDs(), logger)

			store.Load(ctx)

			assert.Len(t, store.Items(), tt.wantLines)
			assert.NotNil(t, store.Items())
			assert.Equal(t, tt.wantWarn, logger.warnings > 0)
		})
	}
}

func TestStore_LoadRestoresPersistedCart(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	store.AddToCart(ctx, p1)
	line := store.AddToCart(ctx, p2)
	store.UpdateQuantity(ctx, line.CartID, 2)

	restored := NewStore(kv, sequentialIDs(), &mockLogger{})
	restored.Load(ctx)

	assert.Equal(t, store.Items(), restored.Items())
	assert.Equal(t, 200.0, restored.Total())
}

func TestStore_LoadRepairsLineIDs(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	stored := `[
		{"id":"1","name":"P1","price":100,"quantity":1},
		{"id":"2","name":"P2","price":50,"quantity":1,"cartId":"2-x"},
		{"id":"2","name":"P2","price":50,"quantity":1,"cartId":"2-x"}
	]`
	require.NoError(t, kv.Put(ctx, StorageKey, []byte(stored)))

	store := NewStore(kv, sequentialIDs(), &mockLogger{})
	store.Load(ctx)

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "1-id1", items[0].CartID)
	assert.Equal(t, "2-x", items[1].CartID)
	assert.Equal(t, "2-id2", items[2].CartID)
	assert.Equal(t, items, persisted(t, kv))

	store.RemoveFromCart(ctx, "2-x")
	assert.Len(t, store.Items(), 2)
}

func TestStore_Take(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	store.AddToCart(ctx, p1)
	store.AddToCart(ctx, p2)

	taken := store.Take(ctx)
	require.Len(t, taken, 2)
	assert.Empty(t, store.Items())
	assert.Empty(t, persisted(t, kv))
	assert.Empty(t, store.Take(ctx))
}

func TestStore_TakeLosesNoConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	const adds = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < adds; i++ {
			store.AddToCart(ctx, p1)
		}
	}()

	taken := 0
	for i := 0; i < 20; i++ {
		taken += len(store.Take(ctx))
	}
	wg.Wait()
	taken += len(store.Take(ctx))

	assert.Equal(t, adds, taken)
}

func TestStore_StateIsConsistent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	line := store.AddToCart(ctx, p1)
	store.AddToCart(ctx, p2)
	store.UpdateQuantity(ctx, line.CartID, 3)

	items, total, count := store.State()
	assert.Len(t, items, 2)
	assert.Equal(t, domain.Total(items), total)
	assert.Equal(t, 350.0, total)
	assert.Equal(t, 4, count)
}

func TestStore_PersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	logger := &mockLogger{}
	store := NewStore(failingKV{kvstore.NewMemoryStore()}, sequentialIDs(), logger)

	store.AddToCart(ctx, p1)

	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 1, logger.errors)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var calls [][]domain.LineItem
	unsubscribe := store.Subscribe(func(items []domain.LineItem) {
		// Reading back from the store inside a listener must not deadlock.
		assert.Equal(t, len(items), len(store.Items()))
		calls = append(calls, items)
	})

	store.AddToCart(ctx, p1)
	store.AddToCart(ctx, p2)
	require.Len(t, calls, 2)
	assert.Len(t, calls[0], 1)
	assert.Len(t, calls[1], 2)

	unsubscribe()
	store.ClearCart(ctx)
	assert.Len(t, calls, 2)
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	store.AddToCart(ctx, p1)

	items := store.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func strPtr(s string) *string {
	return &s
}
