// Package store holds the immutable in-memory views of the inventory,
// orders and co-purchase tables. A Snapshot is built once at startup and
// injected into every component; nothing mutates it afterwards.
package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/raushankrgupta/bundle-strategist/models"
)

// ErrUnknownProduct is returned when a product name cannot be resolved
// against the catalog. It signals a data-consistency bug upstream and is
// never silently skipped.
var ErrUnknownProduct = errors.New("unknown product")

// Snapshot is a read-only view of the loaded tables.
type Snapshot struct {
	productsBySKU  map[string]models.Product
	productsByName map[string]models.Product
	skus           []string // ascending
	orders         []models.OrderLine
	pairs          []models.CoPurchasePair
}

// NewSnapshot builds a snapshot from loaded tables. Products must have
// unique SKUs and unique names: bundles reference products by name, so a
// name collision would make evaluation ambiguous. A nil pairs slice means no
// precomputed co-purchase table was supplied; it is then counted from the
// order lines.
func NewSnapshot(products []models.Product, orders []models.OrderLine, pairs []models.CoPurchasePair) (*Snapshot, error) {
	s := &Snapshot{
		productsBySKU:  make(map[string]models.Product, len(products)),
		productsByName: make(map[string]models.Product, len(products)),
		orders:         orders,
		pairs:          pairs,
	}
	for _, p := range products {
		if _, exists := s.productsBySKU[p.SKU]; exists {
			return nil, fmt.Errorf("duplicate SKU in inventory: %s", p.SKU)
		}
		if _, exists := s.productsByName[p.ProductName]; exists {
			return nil, fmt.Errorf("duplicate product name in inventory: %q", p.ProductName)
		}
		s.productsBySKU[p.SKU] = p
		s.productsByName[p.ProductName] = p
		s.skus = append(s.skus, p.SKU)
	}
	sort.Strings(s.skus)
	if s.pairs == nil {
		s.pairs = CountCoPurchases(orders)
	}
	return s, nil
}

// ProductBySKU looks a product up by SKU.
func (s *Snapshot) ProductBySKU(sku string) (models.Product, bool) {
	p, ok := s.productsBySKU[sku]
	return p, ok
}

// ProductByName resolves a product name against the catalog.
func (s *Snapshot) ProductByName(name string) (models.Product, error) {
	p, ok := s.productsByName[name]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, name)
	}
	return p, nil
}

// Products returns all products in ascending SKU order.
func (s *Snapshot) Products() []models.Product {
	out := make([]models.Product, 0, len(s.skus))
	for _, sku := range s.skus {
		out = append(out, s.productsBySKU[sku])
	}
	return out
}

// TopSKUs returns the first n catalog SKUs in ascending order. This is the
// set the priority filter checks bundles against.
func (s *Snapshot) TopSKUs(n int) []string {
	if n > len(s.skus) {
		n = len(s.skus)
	}
	out := make([]string, n)
	copy(out, s.skus[:n])
	return out
}

// Orders returns all order lines.
func (s *Snapshot) Orders() []models.OrderLine {
	return s.orders
}

// OrdersByUser returns the order lines belonging to one user.
func (s *Snapshot) OrdersByUser(userID string) []models.OrderLine {
	var out []models.OrderLine
	for _, l := range s.orders {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

// CoPurchasePairs returns the co-purchase table.
func (s *Snapshot) CoPurchasePairs() []models.CoPurchasePair {
	return s.pairs
}

// ProductsByCategory groups the catalog by product category. Products
// within a group keep ascending SKU order; category names come back sorted
// so iteration order is stable.
func (s *Snapshot) ProductsByCategory() ([]string, map[string][]models.Product) {
	groups := make(map[string][]models.Product)
	for _, p := range s.Products() {
		groups[p.ProductCategory] = append(groups[p.ProductCategory], p)
	}
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, groups
}

// ProductsInSeason returns catalog products whose seasonality label matches
// the given month. An empty month matches any product that has a label.
func (s *Snapshot) ProductsInSeason(month string) []models.Product {
	var out []models.Product
	for _, p := range s.Products() {
		if p.InSeason(month) {
			out = append(out, p)
		}
	}
	return out
}

// MedianMargin returns the median margin percent across the catalog.
func (s *Snapshot) MedianMargin() float64 {
	if len(s.skus) == 0 {
		return 0
	}
	margins := make([]float64, 0, len(s.skus))
	for _, p := range s.productsBySKU {
		margins = append(margins, p.Margin)
	}
	sort.Float64s(margins)
	mid := len(margins) / 2
	if len(margins)%2 == 1 {
		return margins[mid]
	}
	return (margins[mid-1] + margins[mid]) / 2
}

// AverageDistinctOrdersPerDay is the mean number of distinct orders per
// calendar day with at least one order. Used to scale per-bundle profit
// into a fleet-wide daily estimate.
func (s *Snapshot) AverageDistinctOrdersPerDay() float64 {
	ordersByDay := make(map[string]map[string]bool)
	for _, l := range s.orders {
		day := l.CreatedDate.Format("2006-01-02")
		if ordersByDay[day] == nil {
			ordersByDay[day] = make(map[string]bool)
		}
		ordersByDay[day][l.OrderNumber] = true
	}
	if len(ordersByDay) == 0 {
		return 0
	}
	total := 0
	for _, orders := range ordersByDay {
		total += len(orders)
	}
	return float64(total) / float64(len(ordersByDay))
}

// CountCoPurchases builds the canonical co-purchase table from order lines:
// for every order, each unordered pair of distinct SKUs counts once, with
// SKUA < SKUB. Output is sorted by count descending, then by SKU pair.
func CountCoPurchases(orders []models.OrderLine) []models.CoPurchasePair {
	skusByOrder := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, l := range orders {
		if seen[l.OrderNumber] == nil {
			seen[l.OrderNumber] = make(map[string]bool)
		}
		if !seen[l.OrderNumber][l.SKU] {
			seen[l.OrderNumber][l.SKU] = true
			skusByOrder[l.OrderNumber] = append(skusByOrder[l.OrderNumber], l.SKU)
		}
	}

	counts := make(map[[2]string]int)
	for _, skus := range skusByOrder {
		if len(skus) < 2 {
			continue
		}
		sorted := make([]string, len(skus))
		copy(sorted, skus)
		sort.Strings(sorted)
		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				counts[[2]string{sorted[i], sorted[j]}]++
			}
		}
	}

	pairs := make([]models.CoPurchasePair, 0, len(counts))
	for key, count := range counts {
		pairs = append(pairs, models.CoPurchasePair{SKUA: key[0], SKUB: key[1], Count: count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		if pairs[i].SKUA != pairs[j].SKUA {
			return pairs[i].SKUA < pairs[j].SKUA
		}
		return pairs[i].SKUB < pairs[j].SKUB
	})
	return pairs
}
