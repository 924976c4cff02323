package store

import (
	"math"

	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/season"
)

// EnrichSeasonality fills each product's seasonality label from the month
// distribution of its orders. SKUs without orders get "all year".
func EnrichSeasonality(products []models.Product, orders []models.OrderLine) []models.Product {
	// Distinct orders per SKU and month.
	histograms := make(map[string]map[int]int)
	for _, l := range orders {
		if histograms[l.SKU] == nil {
			histograms[l.SKU] = make(map[int]int)
		}
		histograms[l.SKU][int(l.CreatedDate.Month())]++
	}

	out := make([]models.Product, len(products))
	for i, p := range products {
		counts := histograms[p.SKU]
		if counts == nil {
			p.Seasonality = season.AllYear
		} else {
			p.Seasonality = season.Classify(counts)
		}
		out[i] = p
	}
	return out
}

// EnrichDiscountStats fills each product's average discount and its
// discounted-vs-fullprice order ratio from the order lines. Products whose
// discounted orders never had a full-price counterpart are marked as always
// discounted rather than getting an infinite ratio.
func EnrichDiscountStats(products []models.Product, orders []models.OrderLine) []models.Product {
	type skuStats struct {
		discountSum      float64
		discountedLines  int
		discountedOrders map[string]bool
		fullPriceOrders  map[string]bool
	}
	stats := make(map[string]*skuStats)
	for _, l := range orders {
		st := stats[l.SKU]
		if st == nil {
			st = &skuStats{
				discountedOrders: make(map[string]bool),
				fullPriceOrders:  make(map[string]bool),
			}
			stats[l.SKU] = st
		}
		if l.HasDiscount() {
			st.discountSum += l.DiscountAmount()
			st.discountedLines++
			st.discountedOrders[l.OrderNumber] = true
		} else {
			st.fullPriceOrders[l.OrderNumber] = true
		}
	}

	out := make([]models.Product, len(products))
	for i, p := range products {
		st := stats[p.SKU]
		if st == nil || st.discountedLines == 0 {
			p.AverageDiscount = 0
			p.DiscountRatio = models.FiniteRatio(0)
			out[i] = p
			continue
		}
		p.AverageDiscount = math.Round(st.discountSum/float64(st.discountedLines)*100) / 100
		if len(st.fullPriceOrders) == 0 {
			p.DiscountRatio = models.AlwaysDiscountedRatio()
		} else {
			ratio := float64(len(st.discountedOrders)) / float64(len(st.fullPriceOrders))
			p.DiscountRatio = models.FiniteRatio(math.Round(ratio*100) / 100)
		}
		out[i] = p
	}
	return out
}
