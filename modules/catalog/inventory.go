package catalog

import (
	"errors"
	"strings"
	"sync"

	domain "github.com/example/storefront-demo/domain/catalog"
)

// ErrProductNotFound is returned for unknown product ids.
var ErrProductNotFound = errors.New("product not found")

// Edit holds the administrator-editable product fields.
type Edit struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Inventory is the in-memory working copy of the catalog. Stock adjustments and
// edits are not persisted.
type Inventory struct {
	products   []domain.Product
	categories []domain.Category
	mu         sync.RWMutex
}

// NewInventory creates an inventory from the given reference data.
func NewInventory(products []domain.Product, categories []domain.Category) *Inventory {
	p := make([]domain.Product, len(products))
	copy(p, products)
	c := make([]domain.Category, len(categories))
	copy(c, categories)
	return &Inventory{
		products:   p,
		categories: c,
	}
}

// Products returns the products matching search and category in catalog order.
func (inv *Inventory) Products(search, category string) []domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return domain.Filter(inv.products, search, category)
}

// Categories returns every category, "all" first.
func (inv *Inventory) Categories() []domain.Category {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]domain.Category, len(inv.categories))
	copy(out, inv.categories)
	return out
}

// Get returns the product with id.
func (inv *Inventory) Get(id string) (domain.Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	p, ok := domain.Find(inv.products, id)
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// AdjustStock adds delta to the stock of product id, never going below zero.
// It returns the updated product and the stock it had before.
func (inv *Inventory) AdjustStock(id string, delta int) (domain.Product, int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	i := inv.indexOf(id)
	if i < 0 {
		return domain.Product{}, 0, ErrProductNotFound
	}
	previous := inv.products[i].Stock
	inv.products[i].Stock = max(0, previous+delta)
	return inv.products[i], previous, nil
}

// Update applies an administrator edit. A blank name keeps the current name and
// negative price or stock values are clamped to zero.
func (inv *Inventory) Update(id string, edit Edit) (domain.Product, int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	i := inv.indexOf(id)
	if i < 0 {
		return domain.Product{}, 0, ErrProductNotFound
	}
	p := &inv.products[i]
	previous := p.Stock
	if name := strings.TrimSpace(edit.Name); name != "" {
		p.Name = name
	}
	p.Price = max(0, edit.Price)
	p.Stock = max(0, edit.Stock)
	return *p, previous, nil
}

// Count returns the number of products.
func (inv *Inventory) Count() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.products)
}

// LowStock returns the products whose stock is below threshold.
func (inv *Inventory) LowStock(threshold int) []domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := []domain.Product{}
	for _, p := range inv.products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}

func (inv *Inventory) indexOf(id string) int {
	for i := range inv.products {
		if inv.products[i].ID == id {
			return i
		}
	}
	return -1
}
