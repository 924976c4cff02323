// Package personal holds the per-user bundle strategies: frequently bought
// products, the user's seasonal habits, and discount affinity. All three
// produce nothing (not an error) when the user profile is missing or does
// not meet the strategy's preconditions.
package personal

import (
	"context"
	"errors"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/profile"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// FrequentGenerator bundles the user's two most bought products with a
// third pick.
type FrequentGenerator struct {
	snapshot *store.Snapshot
	profiles *profile.Builder
}

// NewFrequentGenerator creates the personal frequently-bought strategy.
func NewFrequentGenerator(snapshot *store.Snapshot, profiles *profile.Builder) *FrequentGenerator {
	return &FrequentGenerator{snapshot: snapshot, profiles: profiles}
}

// Name returns the strategy label.
func (g *FrequentGenerator) Name() string {
	return models.BundlePersonalFrequent
}

// Generate returns at most one bundle: the user's top two frequent products
// still in the catalog, plus a third product. The third is the lowest-SKU
// catalog item under SKU priority, otherwise the lowest-margin one.
func (g *FrequentGenerator) Generate(ctx context.Context, req base.Request) ([]models.Bundle, error) {
	userProfile, err := g.profiles.Build(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNoOrders) {
			return nil, nil
		}
		return nil, err
	}

	var anchors []models.Product
	for _, fp := range userProfile.MostFrequentProducts {
		if p, ok := g.snapshot.ProductBySKU(fp.SKU); ok {
			anchors = append(anchors, p)
			if len(anchors) == 2 {
				break
			}
		}
	}
	if len(anchors) < 2 {
		return nil, nil
	}

	exclude := map[string]bool{anchors[0].SKU: true, anchors[1].SKU: true}
	var third models.Product
	var ok bool
	if req.Priority == base.PrioritySKU {
		third, ok = base.LowestSKU(g.snapshot.Products(), exclude)
	} else {
		third, ok = base.LowestMargin(g.snapshot.Products(), exclude)
	}
	if !ok {
		return nil, nil
	}

	bundle := models.Bundle{
		Products: []models.Product{anchors[0], anchors[1], third},
		Type:     g.Name(),
	}
	return []models.Bundle{bundle}, nil
}
