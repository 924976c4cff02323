package bundles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
)

func evaluatorFixture(t *testing.T) (*store.Snapshot, *Evaluator) {
	t.Helper()
	products := []models.Product{
		{SKU: "A", ProductName: "Anchor", Margin: 50, BasePrice: 30},
		{SKU: "B", ProductName: "Addon", Margin: 50, BasePrice: 20},
		{SKU: "C", ProductName: "Cheap", Margin: 5, BasePrice: 10},
		{SKU: "D", ProductName: "Slim", Margin: 5, BasePrice: 10},
	}
	snapshot, err := store.NewSnapshot(products, nil, nil)
	require.NoError(t, err)
	return snapshot, NewEvaluator(snapshot, 0.5, 0.10)
}

func TestMaxDiscount(t *testing.T) {
	snapshot, e := evaluatorFixture(t)
	a, _ := snapshot.ProductBySKU("A")
	b, _ := snapshot.ProductBySKU("B")

	firstPrice, totalPrice, maxDiscount, err := e.MaxDiscount([]models.Product{a, b})
	require.NoError(t, err)

	assert.InDelta(t, 30.0, firstPrice, 1e-9)
	assert.InDelta(t, 50.0, totalPrice, 1e-9)
	// Cost basis 25, floor price 25/0.9, so 4/9 of the price is headroom.
	assert.InDelta(t, 4.0/9.0, maxDiscount, 1e-9)
}

func TestMaxDiscountNegativeIsNotClamped(t *testing.T) {
	snapshot, e := evaluatorFixture(t)
	c, _ := snapshot.ProductBySKU("C")
	d, _ := snapshot.ProductBySKU("D")

	// Blended margin 5% is below the 10% floor: the only advisable
	// discount is a price increase.
	_, _, maxDiscount, err := e.MaxDiscount([]models.Product{c, d})
	require.NoError(t, err)
	assert.Negative(t, maxDiscount)
}

func TestMaxDiscountShrinksWithBlendedMargin(t *testing.T) {
	snapshot, err := store.NewSnapshot([]models.Product{
		{SKU: "H1", ProductName: "h1", Margin: 60, BasePrice: 30},
		{SKU: "H2", ProductName: "h2", Margin: 60, BasePrice: 20},
		{SKU: "L1", ProductName: "l1", Margin: 20, BasePrice: 30},
		{SKU: "L2", ProductName: "l2", Margin: 20, BasePrice: 20},
	}, nil, nil)
	require.NoError(t, err)
	e := NewEvaluator(snapshot, 0.5, 0.10)

	h1, _ := snapshot.ProductBySKU("H1")
	h2, _ := snapshot.ProductBySKU("H2")
	l1, _ := snapshot.ProductBySKU("L1")
	l2, _ := snapshot.ProductBySKU("L2")

	_, _, richDiscount, err := e.MaxDiscount([]models.Product{h1, h2})
	require.NoError(t, err)
	_, _, leanDiscount, err := e.MaxDiscount([]models.Product{l1, l2})
	require.NoError(t, err)

	// Same prices, lower blended margin: strictly less discount headroom.
	assert.Greater(t, richDiscount, leanDiscount)
}

func TestMaxDiscountSizeGuard(t *testing.T) {
	snapshot, e := evaluatorFixture(t)
	a, _ := snapshot.ProductBySKU("A")

	_, _, _, err := e.MaxDiscount([]models.Product{a})
	assert.ErrorIs(t, err, ErrBundleSize)

	_, _, _, err = e.MaxDiscount([]models.Product{a, a, a, a})
	assert.ErrorIs(t, err, ErrBundleSize)
}

func TestEvaluateAtZeroCheapness(t *testing.T) {
	snapshot, e := evaluatorFixture(t)
	a, _ := snapshot.ProductBySKU("A")
	b, _ := snapshot.ProductBySKU("B")
	bundle := models.Bundle{Products: []models.Product{a, b}, Type: models.BundleCrossMargin}

	// No discount: the added profit is the addon revenue times conversion.
	eb, err := e.Evaluate(bundle, 0)
	require.NoError(t, err)
	assert.InDelta(t, (50.0-30.0)*0.5, eb.AddedProfit, 1e-9)
	assert.Equal(t, models.BundleCrossMargin, eb.Bundle.Type)
}

func TestEvaluateAtFullCheapness(t *testing.T) {
	snapshot, e := evaluatorFixture(t)
	a, _ := snapshot.ProductBySKU("A")
	b, _ := snapshot.ProductBySKU("B")
	bundle := models.Bundle{Products: []models.Product{a, b}}

	eb, err := e.Evaluate(bundle, 1)
	require.NoError(t, err)
	// Discounted price is the margin floor 25/0.9; the anchor alone earned 30.
	assert.InDelta(t, (25.0/0.9-30.0)*0.5, eb.AddedProfit, 1e-9)
}

func TestEvaluateUnknownProductIsFatal(t *testing.T) {
	_, e := evaluatorFixture(t)
	bundle := models.Bundle{Products: []models.Product{
		{ProductName: "Anchor"},
		{ProductName: "Ghost"},
	}}

	_, err := e.Evaluate(bundle, 1)
	assert.ErrorIs(t, err, store.ErrUnknownProduct)
}

func TestEvaluateResolvesStaleProductData(t *testing.T) {
	_, e := evaluatorFixture(t)
	// The bundle carries stale prices; evaluation must use catalog values.
	bundle := models.Bundle{Products: []models.Product{
		{ProductName: "Anchor", BasePrice: 999},
		{ProductName: "Addon", BasePrice: 999},
	}}

	eb, err := e.Evaluate(bundle, 0)
	require.NoError(t, err)
	assert.InDelta(t, (50.0-30.0)*0.5, eb.AddedProfit, 1e-9)
}
