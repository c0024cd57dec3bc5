package catalog

// DefaultCategories returns the categories shown in the listing filter.
// The "all" pseudo-category is listed first.
func DefaultCategories() []Category {
	return []Category{
		{ID: AllCategories, Name: "All Categories"},
		{ID: "electronics", Name: "Electronics"},
		{ID: "fashion", Name: "Fashion"},
		{ID: "home", Name: "Home & Kitchen"},
		{ID: "books", Name: "Books"},
		{ID: "sports", Name: "Sports & Fitness"},
	}
}

// DefaultProducts returns a fresh copy of the seed catalog.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Wireless Bluetooth Headphones",
			Description: "Over-ear headphones with active noise cancellation and 30 hour battery life",
			Price:       2999,
			Stock:       25,
			Category:    "electronics",
			Rating:      4.5,
		},
		{
			ID:          "2",
			Name:        "Smart Fitness Watch",
			Description: "Heart rate, sleep and step tracking with a bright AMOLED display",
			Price:       4999,
			Stock:       15,
			Category:    "electronics",
			Rating:      4.3,
		},
		{
			ID:          "3",
			Name:        "Cotton Casual T-Shirt",
			Description: "Soft breathable cotton tee, regular fit",
			Price:       599,
			Stock:       50,
			Category:    "fashion",
			Rating:      4.1,
		},
		{
			ID:          "4",
			Name:        "Denim Jacket",
			Description: "Classic blue denim jacket with button closure",
			Price:       1899,
			Stock:       8,
			Category:    "fashion",
			Rating:      4.4,
		},
		{
			ID:          "5",
			Name:        "Non-Stick Cookware Set",
			Description: "Five piece granite coated cookware set for everyday cooking",
			Price:       3499,
			Stock:       12,
			Category:    "home",
			Rating:      4.2,
		},
		{
			ID:          "6",
			Name:        "Stainless Steel Water Bottle",
			Description: "Insulated bottle that keeps drinks cold for 24 hours",
			Price:       799,
			Stock:       0,
			Category:    "home",
			Rating:      4.6,
		},
		{
			ID:          "7",
			Name:        "The Pragmatic Programmer",
			Description: "Classic book on software craftsmanship, 20th anniversary edition",
			Price:       1299,
			Stock:       30,
			Category:    "books",
			Rating:      4.8,
		},
		{
			ID:          "8",
			Name:        "Yoga Mat",
			Description: "6mm anti-slip yoga mat with carrying strap",
			Price:       999,
			Stock:       5,
			Category:    "sports",
			Rating:      4.0,
		},
	}
}
