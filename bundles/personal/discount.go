package personal

import (
	"context"
	"errors"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/profile"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// DiscountGenerator offers bundle deals to users who mostly buy discounted
// items. It ignores priority and depth: it either fires with exactly two
// bundles or not at all.
type DiscountGenerator struct {
	snapshot *store.Snapshot
	profiles *profile.Builder
}

// NewDiscountGenerator creates the personalized discount strategy.
func NewDiscountGenerator(snapshot *store.Snapshot, profiles *profile.Builder) *DiscountGenerator {
	return &DiscountGenerator{snapshot: snapshot, profiles: profiles}
}

// Name returns the strategy label.
func (g *DiscountGenerator) Name() string {
	return models.BundlePersonalizedDiscount
}

// Generate fires only when the user's discount preference exceeds 0.6 and
// the catalog has at least three products. It returns the top-3-by-SKU and
// top-2-by-SKU bundles.
func (g *DiscountGenerator) Generate(ctx context.Context, req base.Request) ([]models.Bundle, error) {
	userProfile, err := g.profiles.Build(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNoOrders) {
			return nil, nil
		}
		return nil, err
	}
	if !userProfile.PrefersDiscounts() {
		return nil, nil
	}

	products := g.snapshot.Products()
	if len(products) < 3 {
		return nil, nil
	}

	return []models.Bundle{
		{Products: []models.Product{products[0], products[1], products[2]}, Type: g.Name()},
		{Products: []models.Product{products[0], products[1]}, Type: g.Name()},
	}, nil
}
