package crossmargin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
)

func snapshotWith(t *testing.T, products []models.Product) *store.Snapshot {
	t.Helper()
	s, err := store.NewSnapshot(products, nil, nil)
	require.NoError(t, err)
	return s
}

func TestGeneratePairsAcrossMedian(t *testing.T) {
	products := []models.Product{
		{SKU: "A", ProductName: "a", Margin: 10},
		{SKU: "B", ProductName: "b", Margin: 20},
		{SKU: "C", ProductName: "c", Margin: 40},
		{SKU: "D", ProductName: "d", Margin: 50},
	}
	// Median is 30: A and B are low, C and D are high.
	g := NewGenerator(snapshotWith(t, products), 10)

	bundles, err := g.Generate(context.Background(), base.Request{Depth: 10})
	require.NoError(t, err)
	require.Len(t, bundles, 4)

	lowSet := map[string]bool{"A": true, "B": true}
	for _, b := range bundles {
		require.Len(t, b.Products, 2)
		assert.True(t, lowSet[b.Products[0].SKU], "first product must be low margin")
		assert.False(t, lowSet[b.Products[1].SKU], "second product must be high margin")
		assert.Equal(t, models.BundleCrossMargin, b.Type)
	}

	// Ascending SKU order on both sides.
	assert.Equal(t, []string{"A", "C"}, bundles[0].SKUs())
	assert.Equal(t, []string{"A", "D"}, bundles[1].SKUs())
	assert.Equal(t, []string{"B", "C"}, bundles[2].SKUs())
}

func TestGenerateMedianProductCountsAsHigh(t *testing.T) {
	products := []models.Product{
		{SKU: "A", ProductName: "a", Margin: 10},
		{SKU: "B", ProductName: "b", Margin: 30},
		{SKU: "C", ProductName: "c", Margin: 50},
	}
	// Median is 30; B sits exactly on it and lands in the high half.
	g := NewGenerator(snapshotWith(t, products), 10)

	bundles, err := g.Generate(context.Background(), base.Request{Depth: 10})
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Equal(t, []string{"A", "B"}, bundles[0].SKUs())
	assert.Equal(t, []string{"A", "C"}, bundles[1].SKUs())
}

func TestGenerateRespectsDepth(t *testing.T) {
	products := []models.Product{
		{SKU: "A", ProductName: "a", Margin: 10},
		{SKU: "B", ProductName: "b", Margin: 20},
		{SKU: "C", ProductName: "c", Margin: 40},
		{SKU: "D", ProductName: "d", Margin: 50},
	}
	g := NewGenerator(snapshotWith(t, products), 10)

	bundles, err := g.Generate(context.Background(), base.Request{Depth: 3})
	require.NoError(t, err)
	assert.Len(t, bundles, 3)
}

func TestGenerateUniformMarginsProduceNothing(t *testing.T) {
	products := []models.Product{
		{SKU: "A", ProductName: "a", Margin: 25},
		{SKU: "B", ProductName: "b", Margin: 25},
	}
	// Everything sits on the median; the low half is empty.
	g := NewGenerator(snapshotWith(t, products), 10)

	bundles, err := g.Generate(context.Background(), base.Request{})
	require.NoError(t, err)
	assert.Empty(t, bundles)
}
