package bundles

import (
	"errors"
	"fmt"

	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// ErrBundleSize is returned when an evaluated bundle does not have exactly
// 2 or 3 products.
var ErrBundleSize = errors.New("bundle must contain exactly 2 or 3 products")

// Evaluator scores bundles with a closed-form pricing model. The first
// product of a bundle is the anchor assumed to sell anyway; the added
// profit is the rest of the bundle net of discount, weighted by an assumed
// conversion rate. That rate is a modeling assumption, not a measured
// probability.
type Evaluator struct {
	snapshot       *store.Snapshot
	conversionRate float64
	desiredMargin  float64
}

// NewEvaluator creates an evaluator. conversionRate is the assumed
// probability the bundle offer converts; desiredMargin is the minimum
// blended margin the bundle must keep at maximum discount.
func NewEvaluator(snapshot *store.Snapshot, conversionRate, desiredMargin float64) *Evaluator {
	return &Evaluator{
		snapshot:       snapshot,
		conversionRate: conversionRate,
		desiredMargin:  desiredMargin,
	}
}

// MaxDiscount computes the largest discount fraction the bundle sustains
// while keeping the desired margin. The fraction can be negative when the
// blended margin is already below the floor; callers must not clamp it
// silently, a negative value means no discount is advisable.
func (e *Evaluator) MaxDiscount(products []models.Product) (firstPrice, totalPrice, maxDiscount float64, err error) {
	if len(products) < 2 || len(products) > 3 {
		return 0, 0, 0, fmt.Errorf("%w: got %d", ErrBundleSize, len(products))
	}

	costBasis := 0.0
	for _, p := range products {
		totalPrice += p.BasePrice
		costBasis += p.BasePrice * (1 - p.Margin/100)
	}

	// The lowest total price that still keeps the desired margin.
	discountedPrice := costBasis / (1 - e.desiredMargin)
	maxDiscount = (totalPrice - discountedPrice) / totalPrice
	return products[0].BasePrice, totalPrice, maxDiscount, nil
}

// Evaluate resolves the bundle's products against the catalog by name and
// returns the expected added profit at the given cheapness (0 = no
// discount, 1 = full maximum discount). An unknown product name is fatal:
// it signals stale or inconsistent data upstream.
func (e *Evaluator) Evaluate(bundle models.Bundle, cheapness float64) (models.EvaluatedBundle, error) {
	products := make([]models.Product, 0, len(bundle.Products))
	for _, ref := range bundle.Products {
		p, err := e.snapshot.ProductByName(ref.ProductName)
		if err != nil {
			return models.EvaluatedBundle{}, err
		}
		products = append(products, p)
	}

	firstPrice, totalPrice, maxDiscount, err := e.MaxDiscount(products)
	if err != nil {
		return models.EvaluatedBundle{}, err
	}

	actualPrice := totalPrice * (1 - cheapness*maxDiscount)
	addedProfit := (actualPrice - firstPrice) * e.conversionRate

	return models.EvaluatedBundle{Bundle: bundle, AddedProfit: addedProfit}, nil
}
