// Package base holds the pieces shared by every bundle strategy: the
// request shape, the SKU priority filter and combination helpers.
package base

import (
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// PrioritySKU asks generators to anchor every bundle on one of the top
// catalog SKUs (ascending SKU order).
const PrioritySKU = "SKU"

// DefaultDepth caps results when the request does not say otherwise.
const DefaultDepth = 5

// Request describes one bundle-generation call.
type Request struct {
	Type     string
	Depth    int
	UserID   string
	Priority string
	Season   string // 3-letter month, empty means any seasonality
}

// Limit returns the effective maximum number of bundles.
func (r Request) Limit() int {
	if r.Depth <= 0 {
		return DefaultDepth
	}
	return r.Depth
}

// PriorityFilter admits bundles that contain at least one top-N SKU. When
// the request carries no priority it admits everything.
type PriorityFilter struct {
	active bool
	topSet map[string]bool
}

// NewPriorityFilter builds the filter for one request.
func NewPriorityFilter(snapshot *store.Snapshot, priority string, topN int) PriorityFilter {
	if priority != PrioritySKU {
		return PriorityFilter{}
	}
	set := make(map[string]bool, topN)
	for _, sku := range snapshot.TopSKUs(topN) {
		set[sku] = true
	}
	return PriorityFilter{active: true, topSet: set}
}

// Admits reports whether a bundle with the given products passes the filter.
func (f PriorityFilter) Admits(products []models.Product) bool {
	if !f.active {
		return true
	}
	for _, p := range products {
		if f.topSet[p.SKU] {
			return true
		}
	}
	return false
}

// EachTriple visits all size-3 combinations of products in lexicographic
// order. The callback returns false to stop early.
func EachTriple(products []models.Product, visit func(a, b, c models.Product) bool) {
	for i := 0; i < len(products); i++ {
		for j := i + 1; j < len(products); j++ {
			for k := j + 1; k < len(products); k++ {
				if !visit(products[i], products[j], products[k]) {
					return
				}
			}
		}
	}
}

// LowestMargin returns the lowest-margin product not already excluded.
// Ties keep the earlier product, so ascending-SKU input stays deterministic.
func LowestMargin(products []models.Product, exclude map[string]bool) (models.Product, bool) {
	var best models.Product
	found := false
	for _, p := range products {
		if exclude[p.SKU] {
			continue
		}
		if !found || p.Margin < best.Margin {
			best = p
			found = true
		}
	}
	return best, found
}

// LowestSKU returns the lowest-SKU product not already excluded. Input is
// expected in ascending SKU order.
func LowestSKU(products []models.Product, exclude map[string]bool) (models.Product, bool) {
	for _, p := range products {
		if !exclude[p.SKU] {
			return p, true
		}
	}
	return models.Product{}, false
}
