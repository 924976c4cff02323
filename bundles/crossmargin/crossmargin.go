// Package crossmargin pairs a low-margin product with a high-margin one so
// the popular cheap item carries the profitable one.
package crossmargin

import (
	"context"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// Generator splits the catalog at the median margin and pairs across the
// halves.
type Generator struct {
	snapshot *store.Snapshot
	topN     int
}

// NewGenerator creates the cross-margin strategy.
func NewGenerator(snapshot *store.Snapshot, topN int) *Generator {
	return &Generator{snapshot: snapshot, topN: topN}
}

// Name returns the strategy label.
func (g *Generator) Name() string {
	return models.BundleCrossMargin
}

// Generate pairs each low-half product (margin below the median) with each
// high-half product, low first. Products sitting exactly on the median
// count as high. Both sides iterate in ascending SKU order.
func (g *Generator) Generate(ctx context.Context, req base.Request) ([]models.Bundle, error) {
	filter := base.NewPriorityFilter(g.snapshot, req.Priority, g.topN)
	limit := req.Limit()

	median := g.snapshot.MedianMargin()
	var low, high []models.Product
	for _, p := range g.snapshot.Products() {
		if p.Margin < median {
			low = append(low, p)
		} else {
			high = append(high, p)
		}
	}

	var bundles []models.Bundle
	for _, l := range low {
		for _, h := range high {
			if l.SKU == h.SKU {
				continue
			}
			products := []models.Product{l, h}
			if !filter.Admits(products) {
				continue
			}
			bundles = append(bundles, models.Bundle{Products: products, Type: g.Name()})
			if len(bundles) >= limit {
				return bundles, nil
			}
		}
	}
	return bundles, nil
}
