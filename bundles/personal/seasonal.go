package personal

import (
	"context"
	"errors"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/profile"
	"github.com/raushankrgupta/bundle-strategist/season"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// SeasonalGenerator pairs the user's favorite in-season product with an
// in-season product they have not bought yet.
type SeasonalGenerator struct {
	snapshot *store.Snapshot
	profiles *profile.Builder
	topN     int
}

// NewSeasonalGenerator creates the personal seasonal strategy.
func NewSeasonalGenerator(snapshot *store.Snapshot, profiles *profile.Builder, topN int) *SeasonalGenerator {
	return &SeasonalGenerator{snapshot: snapshot, profiles: profiles, topN: topN}
}

// Name returns the strategy label.
func (g *SeasonalGenerator) Name() string {
	return models.BundlePersonalSeasonal
}

// Generate returns at most one bundle. It needs a strong seasonal trend, a
// frequently bought product selling in the trend month, and a same-season
// product the user has never ordered. Under SKU priority the companion is
// the lowest-SKU candidate within the top-N set, lowest-margin otherwise.
func (g *SeasonalGenerator) Generate(ctx context.Context, req base.Request) ([]models.Bundle, error) {
	userProfile, err := g.profiles.Build(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNoOrders) {
			return nil, nil
		}
		return nil, err
	}
	if userProfile.SeasonalTrendMonth == 0 {
		return nil, nil
	}
	month := season.MonthName(userProfile.SeasonalTrendMonth)

	var anchor models.Product
	found := false
	for _, fp := range userProfile.MostFrequentProducts {
		p, ok := g.snapshot.ProductBySKU(fp.SKU)
		if ok && p.InSeason(month) {
			anchor = p
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}

	bought := map[string]bool{}
	for _, l := range g.snapshot.OrdersByUser(req.UserID) {
		bought[l.SKU] = true
	}

	var candidates []models.Product
	for _, p := range g.snapshot.ProductsInSeason(month) {
		if !bought[p.SKU] {
			candidates = append(candidates, p)
		}
	}

	var companion models.Product
	var ok bool
	if req.Priority == base.PrioritySKU {
		// The companion itself must come from the top-N set so the bundle
		// always contains a priority SKU.
		filter := base.NewPriorityFilter(g.snapshot, req.Priority, g.topN)
		var top []models.Product
		for _, p := range candidates {
			if filter.Admits([]models.Product{p}) {
				top = append(top, p)
			}
		}
		companion, ok = base.LowestSKU(top, nil)
	} else {
		companion, ok = base.LowestMargin(candidates, nil)
	}
	if !ok {
		return nil, nil
	}

	bundle := models.Bundle{
		Products: []models.Product{anchor, companion},
		Type:     g.Name(),
	}
	return []models.Bundle{bundle}, nil
}
