// Package seasonal bundles products that sell in the same season.
package seasonal

import (
	"context"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/season"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// Generator enumerates size-3 combinations over the catalog filtered by
// seasonality label.
type Generator struct {
	snapshot *store.Snapshot
	topN     int
}

// NewGenerator creates the seasonal strategy.
func NewGenerator(snapshot *store.Snapshot, topN int) *Generator {
	return &Generator{snapshot: snapshot, topN: topN}
}

// Name returns the strategy label.
func (g *Generator) Name() string {
	return models.BundleSeasonal
}

// Generate filters the catalog to products matching the requested season
// (any labeled product when the season is empty) and combines them three at
// a time in ascending SKU order.
func (g *Generator) Generate(ctx context.Context, req base.Request) ([]models.Bundle, error) {
	filter := base.NewPriorityFilter(g.snapshot, req.Priority, g.topN)
	limit := req.Limit()

	// Month prefixes like "jul" are expanded to the full name so they
	// match range labels such as "june-july".
	month := req.Season
	if n := season.MonthNumber(month); n != 0 {
		month = season.MonthName(n)
	}
	inSeason := g.snapshot.ProductsInSeason(month)

	var bundles []models.Bundle
	base.EachTriple(inSeason, func(a, b, c models.Product) bool {
		products := []models.Product{a, b, c}
		if filter.Admits(products) {
			bundles = append(bundles, models.Bundle{Products: products, Type: g.Name()})
		}
		return len(bundles) < limit
	})
	return bundles, nil
}
