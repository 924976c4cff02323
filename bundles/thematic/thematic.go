// Package thematic bundles three products from the same category.
package thematic

import (
	"context"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// Generator enumerates size-3 combinations within each product category.
type Generator struct {
	snapshot *store.Snapshot
	topN     int
}

// NewGenerator creates the thematic strategy.
func NewGenerator(snapshot *store.Snapshot, topN int) *Generator {
	return &Generator{snapshot: snapshot, topN: topN}
}

// Name returns the strategy label.
func (g *Generator) Name() string {
	return models.BundleThematic
}

// Generate walks categories in sorted order and products in ascending SKU
// order, stopping as soon as depth bundles are collected.
func (g *Generator) Generate(ctx context.Context, req base.Request) ([]models.Bundle, error) {
	filter := base.NewPriorityFilter(g.snapshot, req.Priority, g.topN)
	limit := req.Limit()

	categories, groups := g.snapshot.ProductsByCategory()

	var bundles []models.Bundle
	for _, category := range categories {
		if len(bundles) >= limit {
			break
		}
		base.EachTriple(groups[category], func(a, b, c models.Product) bool {
			products := []models.Product{a, b, c}
			if filter.Admits(products) {
				bundles = append(bundles, models.Bundle{Products: products, Type: g.Name()})
			}
			return len(bundles) < limit
		})
	}
	return bundles, nil
}
