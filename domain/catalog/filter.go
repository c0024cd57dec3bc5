package catalog

import "strings"

// Filter returns the products matching both the category and the search term.
// An empty or "all" category matches everything; an empty search term matches
// everything. Otherwise the term is matched case-insensitively as a substring of
// the name or the description. Source order is preserved.
func Filter(products []Product, search, category string) []Product {
	term := strings.ToLower(search)

	result := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, category) {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matchesCategory(p Product, category string) bool {
	return category == "" || category == AllCategories || p.Category == category
}

func matchesTerm(p Product, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Description), lowerTerm)
}

// Find returns the product with the given id.
func Find(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
