package catalog

import "github.com/niksmo/visioncart/internal/core/domain"

// Filter returns the products of c matching criteria, in catalog order.
//
// The result never aliases c.
func Filter(c []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	out := make([]domain.Product, 0, len(c))
	for _, p := range c {
		if criteria.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
