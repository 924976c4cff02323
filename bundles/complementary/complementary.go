// Package complementary builds bundles from the co-purchase graph: three
// products where every pair has been bought together form a triangle and
// become one bundle.
package complementary

import (
	"context"
	"sort"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// Generator enumerates triangles in the co-purchase graph.
type Generator struct {
	snapshot *store.Snapshot
	topN     int
}

// NewGenerator creates the complementary strategy.
func NewGenerator(snapshot *store.Snapshot, topN int) *Generator {
	return &Generator{snapshot: snapshot, topN: topN}
}

// Name returns the strategy label.
func (g *Generator) Name() string {
	return models.BundleComplementary
}

// Generate returns the strongest depth triangle bundles. Triangles are
// enumerated over ordered SKUs (a < b < c), so each closure a-b-c-a is found
// exactly once; the whole graph is scanned before truncating, and triangles
// are ranked by the sum of their pair counts with ties keeping SKU order.
func (g *Generator) Generate(ctx context.Context, req base.Request) ([]models.Bundle, error) {
	counts := make(map[[2]string]int)
	adjacency := make(map[string]map[string]bool)
	nodeSet := make(map[string]bool)
	for _, pair := range g.snapshot.CoPurchasePairs() {
		a, b := pair.SKUA, pair.SKUB
		if a > b {
			a, b = b, a
		}
		counts[[2]string{a, b}] += pair.Count
		if adjacency[a] == nil {
			adjacency[a] = make(map[string]bool)
		}
		if adjacency[b] == nil {
			adjacency[b] = make(map[string]bool)
		}
		adjacency[a][b] = true
		adjacency[b][a] = true
		nodeSet[a] = true
		nodeSet[b] = true
	}

	nodes := make([]string, 0, len(nodeSet))
	for sku := range nodeSet {
		nodes = append(nodes, sku)
	}
	sort.Strings(nodes)

	filter := base.NewPriorityFilter(g.snapshot, req.Priority, g.topN)

	type triangle struct {
		bundle models.Bundle
		count  int
	}
	var triangles []triangle
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if !adjacency[nodes[i]][nodes[j]] {
				continue
			}
			for k := j + 1; k < len(nodes); k++ {
				if !adjacency[nodes[i]][nodes[k]] || !adjacency[nodes[j]][nodes[k]] {
					continue
				}
				products, ok := g.resolve(nodes[i], nodes[j], nodes[k])
				if !ok || !filter.Admits(products) {
					continue
				}
				count := counts[[2]string{nodes[i], nodes[j]}] +
					counts[[2]string{nodes[i], nodes[k]}] +
					counts[[2]string{nodes[j], nodes[k]}]
				triangles = append(triangles, triangle{
					bundle: models.Bundle{Products: products, Type: g.Name()},
					count:  count,
				})
			}
		}
	}

	sort.SliceStable(triangles, func(i, j int) bool {
		return triangles[i].count > triangles[j].count
	})
	if limit := req.Limit(); len(triangles) > limit {
		triangles = triangles[:limit]
	}

	bundles := make([]models.Bundle, 0, len(triangles))
	for _, tr := range triangles {
		bundles = append(bundles, tr.bundle)
	}
	return bundles, nil
}

// resolve maps the triangle's SKUs back to catalog products. Pairs can
// mention SKUs that were since removed from inventory; those triangles are
// skipped.
func (g *Generator) resolve(skus ...string) ([]models.Product, bool) {
	products := make([]models.Product, 0, len(skus))
	for _, sku := range skus {
		p, ok := g.snapshot.ProductBySKU(sku)
		if !ok {
			return nil, false
		}
		products = append(products, p)
	}
	return products, true
}
