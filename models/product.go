package models

import "strings"

// DiscountRatio is how often a product sells discounted vs at full price.
// A product that never sold at full price has no finite ratio, so the
// "always discounted" case is an explicit variant instead of +Inf.
type DiscountRatio struct {
	AlwaysDiscounted bool    `bson:"always_discounted" json:"always_discounted"`
	Value            float64 `bson:"value" json:"value"`
}

// FiniteRatio returns a ratio of discounted to full-price orders.
func FiniteRatio(v float64) DiscountRatio {
	return DiscountRatio{Value: v}
}

// AlwaysDiscountedRatio marks a product that has never sold at full price.
func AlwaysDiscountedRatio() DiscountRatio {
	return DiscountRatio{AlwaysDiscounted: true}
}

// Product represents one inventory row, keyed by SKU.
// Margin and AverageDiscount are percentages (0-100), not fractions;
// they are only converted at evaluation time.
type Product struct {
	SKU             string        `bson:"sku" json:"sku"`
	Quantity        int           `bson:"quantity" json:"quantity"`
	ProductCategory string        `bson:"product_category" json:"product_category"`
	ProductName     string        `bson:"product_name" json:"product_name"`
	Margin          float64       `bson:"margin" json:"margin"`
	AverageDiscount float64       `bson:"average_discount" json:"average_discount"`
	DiscountRatio   DiscountRatio `bson:"discount_ratio" json:"discount_ratio"`
	Seasonality     string        `bson:"seasonality" json:"seasonality"`
	BasePrice       float64       `bson:"base_price" json:"base_price"`
}

// InSeason reports whether the product's seasonality label mentions the
// given month. The match is a case-insensitive substring check so that a
// 3-letter query like "jan" matches both "january" and "december-january".
func (p Product) InSeason(month string) bool {
	if month == "" {
		return p.Seasonality != ""
	}
	return strings.Contains(strings.ToLower(p.Seasonality), strings.ToLower(month))
}

// CoPurchasePair counts how many orders contained both products.
// SKUA < SKUB so each unordered pair has one canonical row.
type CoPurchasePair struct {
	SKUA  string `bson:"product_a" json:"product_a"`
	SKUB  string `bson:"product_b" json:"product_b"`
	Count int    `bson:"count" json:"count"`
}
