package seasonal

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

func winterCatalog() []models.Product {
	return []models.Product{
		{SKU: "W1", ProductName: "w1", Seasonality: "october-december"},
		{SKU: "W2", ProductName: "w2", Seasonality: "december"},
		{SKU: "W3", ProductName: "w3", Seasonality: "december-february"},
		{SKU: "S1", ProductName: "s1", Seasonality: "july"},
		{SKU: "S2", ProductName: "s2", Seasonality: ""},
	}
}

func TestGenerateFiltersBySeason(t *testing.T) {
	g := NewGenerator(snapshotWith(t, winterCatalog()), 10)

	bundles, err := g.Generate(context.Background(), base.Request{Season: "december", Depth: 10})
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.Equal(t, []string{"W1", "W2", "W3"}, bundles[0].SKUs())
	assert.Equal(t, models.BundleSeasonal, bundles[0].Type)
}

func TestGenerateExpandsMonthPrefix(t *testing.T) {
	g := NewGenerator(snapshotWith(t, winterCatalog()), 10)

	bundles, err := g.Generate(context.Background(), base.Request{Season: "dec", Depth: 10})
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.Equal(t, []string{"W1", "W2", "W3"}, bundles[0].SKUs())
}

func TestGenerateEmptySeasonUsesAnyLabeledProduct(t *testing.T) {
	g := NewGenerator(snapshotWith(t, winterCatalog()), 10)

	// W1-W3 plus S1 are labeled: C(4,3) = 4 triples.
	bundles, err := g.Generate(context.Background(), base.Request{Depth: 10})
	require.NoError(t, err)
	assert.Len(t, bundles, 4)
}

func TestGenerateNoSeasonMatch(t *testing.T) {
	g := NewGenerator(snapshotWith(t, winterCatalog()), 10)

	bundles, err := g.Generate(context.Background(), base.Request{Season: "april", Depth: 10})
	require.NoError(t, err)
	assert.Empty(t, bundles)
}
