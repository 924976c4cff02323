package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/bundle-strategist/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func testProducts() []models.Product {
	return []models.Product{
		{SKU: "SKU-C", ProductName: "Candle", ProductCategory: "home", Margin: 40, BasePrice: 12},
		{SKU: "SKU-A", ProductName: "Apron", ProductCategory: "kitchen", Margin: 20, BasePrice: 25},
		{SKU: "SKU-B", ProductName: "Bowl", ProductCategory: "kitchen", Margin: 30, BasePrice: 8},
		{SKU: "SKU-D", ProductName: "Duvet", ProductCategory: "home", Margin: 50, BasePrice: 60},
	}
}

func TestNewSnapshotRejectsDuplicateSKU(t *testing.T) {
	products := testProducts()
	products = append(products, models.Product{SKU: "SKU-A", ProductName: "Apron copy"})
	_, err := NewSnapshot(products, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SKU-A")
}

func TestNewSnapshotRejectsDuplicateName(t *testing.T) {
	products := testProducts()
	products = append(products, models.Product{SKU: "SKU-E", ProductName: "Candle"})
	_, err := NewSnapshot(products, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Candle")
}

func TestProductsAscendingSKU(t *testing.T) {
	s, err := NewSnapshot(testProducts(), nil, nil)
	require.NoError(t, err)

	var skus []string
	for _, p := range s.Products() {
		skus = append(skus, p.SKU)
	}
	assert.Equal(t, []string{"SKU-A", "SKU-B", "SKU-C", "SKU-D"}, skus)
}

func TestProductByNameUnknown(t *testing.T) {
	s, err := NewSnapshot(testProducts(), nil, nil)
	require.NoError(t, err)

	_, err = s.ProductByName("Ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProduct)

	p, err := s.ProductByName("Bowl")
	require.NoError(t, err)
	assert.Equal(t, "SKU-B", p.SKU)
}

func TestTopSKUs(t *testing.T) {
	s, err := NewSnapshot(testProducts(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU-A", "SKU-B"}, s.TopSKUs(2))
	assert.Len(t, s.TopSKUs(10), 4)
}

func TestMedianMargin(t *testing.T) {
	s, err := NewSnapshot(testProducts(), nil, nil)
	require.NoError(t, err)
	// Margins 20, 30, 40, 50: even count takes the mean of the middle two.
	assert.InDelta(t, 35.0, s.MedianMargin(), 1e-9)

	odd, err := NewSnapshot(testProducts()[:3], nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, odd.MedianMargin(), 1e-9)

	empty, err := NewSnapshot(nil, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.MedianMargin())
}

func TestProductsByCategory(t *testing.T) {
	s, err := NewSnapshot(testProducts(), nil, nil)
	require.NoError(t, err)

	categories, groups := s.ProductsByCategory()
	assert.Equal(t, []string{"home", "kitchen"}, categories)
	assert.Equal(t, "SKU-C", groups["home"][0].SKU)
	assert.Equal(t, "SKU-D", groups["home"][1].SKU)
	assert.Len(t, groups["kitchen"], 2)
}

func TestCountCoPurchases(t *testing.T) {
	date := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.OrderLine{
		// Order 1: B and A twice (the duplicate line must not double count).
		{OrderNumber: "O1", SKU: "SKU-B", CreatedDate: date},
		{OrderNumber: "O1", SKU: "SKU-A", CreatedDate: date},
		{OrderNumber: "O1", SKU: "SKU-A", CreatedDate: date},
		// Order 2: A and B again, reversed order.
		{OrderNumber: "O2", SKU: "SKU-A", CreatedDate: date},
		{OrderNumber: "O2", SKU: "SKU-B", CreatedDate: date},
		// Order 3: single SKU, contributes nothing.
		{OrderNumber: "O3", SKU: "SKU-C", CreatedDate: date},
		// Order 4: a triple produces all three pairs.
		{OrderNumber: "O4", SKU: "SKU-C", CreatedDate: date},
		{OrderNumber: "O4", SKU: "SKU-B", CreatedDate: date},
		{OrderNumber: "O4", SKU: "SKU-D", CreatedDate: date},
	}

	pairs := CountCoPurchases(orders)
	require.Len(t, pairs, 4)

	// Highest count first, SKUA < SKUB always.
	assert.Equal(t, models.CoPurchasePair{SKUA: "SKU-A", SKUB: "SKU-B", Count: 2}, pairs[0])
	for _, p := range pairs[1:] {
		assert.Equal(t, 1, p.Count)
		assert.Less(t, p.SKUA, p.SKUB)
	}
	assert.Equal(t, "SKU-B", pairs[1].SKUA)
	assert.Equal(t, "SKU-C", pairs[1].SKUB)
}

func TestSnapshotDerivesPairsWhenMissing(t *testing.T) {
	orders := []models.OrderLine{
		{OrderNumber: "O1", SKU: "SKU-A"},
		{OrderNumber: "O1", SKU: "SKU-B"},
	}
	s, err := NewSnapshot(testProducts(), orders, nil)
	require.NoError(t, err)
	require.Len(t, s.CoPurchasePairs(), 1)
	assert.Equal(t, "SKU-A", s.CoPurchasePairs()[0].SKUA)

	// An explicit empty table is respected, not recounted.
	s2, err := NewSnapshot(testProducts(), orders, []models.CoPurchasePair{})
	require.NoError(t, err)
	assert.Empty(t, s2.CoPurchasePairs())
}

func TestAverageDistinctOrdersPerDay(t *testing.T) {
	orders := []models.OrderLine{
		{OrderNumber: "O1", SKU: "SKU-A", CreatedDate: day(t, "2025-03-01")},
		{OrderNumber: "O1", SKU: "SKU-B", CreatedDate: day(t, "2025-03-01")},
		{OrderNumber: "O2", SKU: "SKU-A", CreatedDate: day(t, "2025-03-01")},
		{OrderNumber: "O3", SKU: "SKU-C", CreatedDate: day(t, "2025-03-05")},
	}
	s, err := NewSnapshot(testProducts(), orders, nil)
	require.NoError(t, err)

	// Two orders on the 1st, one on the 5th; days without orders don't count.
	assert.InDelta(t, 1.5, s.AverageDistinctOrdersPerDay(), 1e-9)

	empty, err := NewSnapshot(testProducts(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.AverageDistinctOrdersPerDay())
}

func TestOrdersByUser(t *testing.T) {
	orders := []models.OrderLine{
		{OrderNumber: "O1", SKU: "SKU-A", UserID: "u1"},
		{OrderNumber: "O2", SKU: "SKU-B", UserID: "u2"},
		{OrderNumber: "O3", SKU: "SKU-C", UserID: "u1"},
		{OrderNumber: "O4", SKU: "SKU-D"}, // guest checkout
	}
	s, err := NewSnapshot(testProducts(), orders, nil)
	require.NoError(t, err)

	assert.Len(t, s.OrdersByUser("u1"), 2)
	assert.Len(t, s.OrdersByUser("u2"), 1)
	assert.Empty(t, s.OrdersByUser("nobody"))
}

func TestProductsInSeason(t *testing.T) {
	products := testProducts()
	products[0].Seasonality = "november-january"
	products[1].Seasonality = "all year"
	products[2].Seasonality = "june"
	products[3].Seasonality = ""
	s, err := NewSnapshot(products, nil, nil)
	require.NoError(t, err)

	var skus []string
	for _, p := range s.ProductsInSeason("november") {
		skus = append(skus, p.SKU)
	}
	assert.Equal(t, []string{"SKU-C"}, skus)

	// Empty month matches every labeled product.
	assert.Len(t, s.ProductsInSeason(""), 3)
}
