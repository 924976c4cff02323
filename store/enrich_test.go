package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/season"
)

func lineAt(orderNumber, sku string, month int, original, final float64) models.OrderLine {
	return models.OrderLine{
		OrderNumber:       orderNumber,
		SKU:               sku,
		CreatedDate:       time.Date(2025, time.Month(month), 10, 0, 0, 0, 0, time.UTC),
		OriginalUnitPrice: original,
		FinalUnitPrice:    final,
		Quantity:          1,
	}
}

func TestEnrichSeasonality(t *testing.T) {
	products := []models.Product{
		{SKU: "SUMMER", ProductName: "Fan"},
		{SKU: "FLAT", ProductName: "Socks"},
		{SKU: "IDLE", ProductName: "Never sold"},
	}
	var orders []models.OrderLine
	for i := 0; i < 10; i++ {
		orders = append(orders, lineAt("S", "SUMMER", 7, 10, 10))
	}
	orders = append(orders, lineAt("S2", "SUMMER", 1, 10, 10))
	for m := 1; m <= 12; m++ {
		orders = append(orders, lineAt("F", "FLAT", m, 5, 5))
	}

	enriched := EnrichSeasonality(products, orders)
	require.Len(t, enriched, 3)
	assert.Equal(t, "july", enriched[0].Seasonality)
	assert.Equal(t, season.AllYear, enriched[1].Seasonality)
	assert.Equal(t, season.AllYear, enriched[2].Seasonality)
}

func TestEnrichDiscountStats(t *testing.T) {
	products := []models.Product{
		{SKU: "MIXED", ProductName: "Mug"},
		{SKU: "ALWAYS", ProductName: "Clearance mug"},
		{SKU: "NEVER", ProductName: "Premium mug"},
	}
	orders := []models.OrderLine{
		// MIXED: two discounted orders, one full price.
		lineAt("O1", "MIXED", 3, 10, 8),
		lineAt("O2", "MIXED", 3, 10, 9),
		lineAt("O3", "MIXED", 3, 10, 10),
		// ALWAYS: only discounted orders.
		lineAt("O4", "ALWAYS", 3, 20, 15),
		lineAt("O5", "ALWAYS", 3, 20, 10),
		// NEVER: only full price.
		lineAt("O6", "NEVER", 3, 30, 30),
	}

	enriched := EnrichDiscountStats(products, orders)
	require.Len(t, enriched, 3)

	mixed := enriched[0]
	assert.InDelta(t, 1.5, mixed.AverageDiscount, 1e-9) // (2 + 1) / 2
	assert.False(t, mixed.DiscountRatio.AlwaysDiscounted)
	assert.InDelta(t, 2.0, mixed.DiscountRatio.Value, 1e-9)

	always := enriched[1]
	assert.InDelta(t, 7.5, always.AverageDiscount, 1e-9)
	assert.True(t, always.DiscountRatio.AlwaysDiscounted)

	never := enriched[2]
	assert.Zero(t, never.AverageDiscount)
	assert.False(t, never.DiscountRatio.AlwaysDiscounted)
	assert.Zero(t, never.DiscountRatio.Value)
}
