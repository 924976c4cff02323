package models

// OnlyOneOrder is reported instead of an order cadence when a user has a
// single distinct order date, so callers never see a NaN average.
const OnlyOneOrder = "Only one order"

// NoSeasonalTrend is the seasonal trend label for users without a clearly
// dominant order month.
const NoSeasonalTrend = "No strong seasonal trend."

// FrequentProduct is a SKU a user ordered in at least two distinct orders.
type FrequentProduct struct {
	SKU          string `bson:"sku" json:"sku"`
	ItemTitle    string `bson:"item_title" json:"item_title"`
	TimesOrdered int    `bson:"times_ordered" json:"times_ordered"`
}

// UserAttributes holds the classification returned by the profiling AI.
// The values are opaque labels; nothing here is computed locally.
type UserAttributes struct {
	Gender          string   `bson:"gender" json:"gender"`
	PriceSegment    string   `bson:"price_segment" json:"price_segment"`
	CategorySegment []string `bson:"category_segment" json:"category_segment"`
}

// FallbackAttributes is used when the profiling AI call fails; the profile
// is still usable, just unclassified.
func FallbackAttributes() UserAttributes {
	return UserAttributes{
		Gender:          "undetermined",
		PriceSegment:    "average",
		CategorySegment: []string{"other"},
	}
}

// UserProfile is the per-user purchasing profile derived from order lines.
// It is recomputed from orders on every run and never persisted.
type UserProfile struct {
	UserID               string            `json:"user_id"`
	MostFrequentProducts []FrequentProduct `json:"most_frequent_products"`
	AverageDaysBetween   float64           `json:"average_days_between_orders"`
	SingleOrder          bool              `json:"single_order"`
	SeasonalTrend        string            `json:"seasonal_trend"`
	SeasonalTrendMonth   int               `json:"seasonal_trend_month"` // 0 when no strong trend
	DiscountPreference   *float64          `json:"discount_preference"`  // nil when no quantity ordered
	AverageDiscount      float64           `json:"average_discount"`
	UserAttributes       UserAttributes    `json:"user_attributes"`
}

// PrefersDiscounts reports whether the user buys mostly discounted items.
// The 0.6 cutoff is the trigger for the personalized discount strategy.
func (p UserProfile) PrefersDiscounts() bool {
	return p.DiscountPreference != nil && *p.DiscountPreference > 0.6
}
