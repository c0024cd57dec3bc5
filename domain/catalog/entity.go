package catalog

// AllCategories is the category filter value that matches every product.
const AllCategories = "all"

// Product is an item in the storefront catalog.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
}

// InStock reports whether the product can be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Category groups products in the listing.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
