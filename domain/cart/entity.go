package cart

import "github.com/example/storefront-demo/domain/catalog"

// LineItem is one cart entry. It embeds a snapshot of the product taken when the
// line was added. CartID is unique per line; several lines may share a product ID.
type LineItem struct {
	catalog.Product
	Quantity int    `json:"quantity"`
	CartID   string `json:"cartId"`
}

// Subtotal returns price times quantity for the line.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// Total returns the sum of all line subtotals.
func Total(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// Count returns the number of units in the cart (sum of quantities).
func Count(items []LineItem) int {
	var n int
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
