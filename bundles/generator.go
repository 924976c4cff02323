// Package bundles wires the bundle strategies together and scores their
// output with the discount/profit model.
package bundles

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/bundles/complementary"
	"github.com/raushankrgupta/bundle-strategist/bundles/crossmargin"
	"github.com/raushankrgupta/bundle-strategist/bundles/personal"
	"github.com/raushankrgupta/bundle-strategist/bundles/seasonal"
	"github.com/raushankrgupta/bundle-strategist/bundles/thematic"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/profile"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// Generator defines the interface for all bundle strategies. Generators
// return an empty slice, not an error, when their preconditions are unmet.
type Generator interface {
	// Name returns the strategy label attached to generated bundles.
	Name() string
	// Generate produces candidate bundles for the request.
	Generate(ctx context.Context, req base.Request) ([]models.Bundle, error)
}

// Deps carries what the strategies need: the immutable snapshot, the
// profile builder for personalized strategies, and the priority top-N.
type Deps struct {
	Snapshot *store.Snapshot
	Profiles *profile.Builder
	TopN     int
}

// ForType returns the generator for the requested bundle type.
func ForType(deps Deps, bundleType string) (Generator, error) {
	for _, g := range All(deps) {
		if g.Name() == bundleType {
			return g, nil
		}
	}
	return nil, fmt.Errorf("no generator found for bundle type: %s", bundleType)
}

// All returns every strategy in canonical aggregation order.
func All(deps Deps) []Generator {
	return []Generator{
		complementary.NewGenerator(deps.Snapshot, deps.TopN),
		thematic.NewGenerator(deps.Snapshot, deps.TopN),
		seasonal.NewGenerator(deps.Snapshot, deps.TopN),
		crossmargin.NewGenerator(deps.Snapshot, deps.TopN),
		personal.NewFrequentGenerator(deps.Snapshot, deps.Profiles),
		personal.NewSeasonalGenerator(deps.Snapshot, deps.Profiles, deps.TopN),
		personal.NewDiscountGenerator(deps.Snapshot, deps.Profiles),
	}
}

// personalized reports whether the strategy needs a user.
func personalized(name string) bool {
	switch name {
	case models.BundlePersonalFrequent, models.BundlePersonalSeasonal, models.BundlePersonalizedDiscount:
		return true
	}
	return false
}
