package models

import "time"

// Bundle strategy labels.
const (
	BundleComplementary        = "complementary"
	BundleThematic             = "thematic"
	BundleSeasonal             = "seasonal"
	BundleCrossMargin          = "cross-margin"
	BundlePersonalFrequent     = "personal-frequent"
	BundlePersonalSeasonal     = "personal-seasonal"
	BundlePersonalizedDiscount = "personalized-discount"
)

// Bundle is an ordered set of 2 or 3 distinct products proposed as an offer.
// The first product is the anchor: the item assumed to sell anyway.
type Bundle struct {
	Products []Product `json:"products"`
	Type     string    `json:"bundle_type"`
}

// SKUs returns the bundle's SKUs in listed order.
func (b Bundle) SKUs() []string {
	skus := make([]string, 0, len(b.Products))
	for _, p := range b.Products {
		skus = append(skus, p.SKU)
	}
	return skus
}

// ProductNames returns the bundle's product names in listed order.
func (b Bundle) ProductNames() []string {
	names := make([]string, 0, len(b.Products))
	for _, p := range b.Products {
		names = append(names, p.ProductName)
	}
	return names
}

// EvaluatedBundle is a bundle with its estimated incremental profit attached.
type EvaluatedBundle struct {
	Bundle      Bundle  `json:"bundle"`
	AddedProfit float64 `json:"added_profit"`
}

// BundleReport is a ranked set of evaluated bundles persisted after a run.
type BundleReport struct {
	GeneratedAt          time.Time         `bson:"generated_at" json:"generated_at"`
	UserID               string            `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Bundles              []EvaluatedBundle `bson:"bundles" json:"bundles"`
	AvgAddedProfitPerDay float64           `bson:"avg_added_profit_per_day" json:"avg_added_profit_per_day"`
	ReportKey            string            `bson:"report_key,omitempty" json:"report_key,omitempty"`
}
