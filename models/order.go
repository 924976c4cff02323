package models

import "time"

// OrderLine represents one line of a customer order.
// UserID is empty for guest checkouts; those lines are kept for co-purchase
// counting but never contribute to a user profile.
type OrderLine struct {
	OrderNumber       string    `bson:"order_number" json:"order_number"`
	SKU               string    `bson:"sku" json:"sku"`
	UserID            string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Quantity          int       `bson:"quantity" json:"quantity"`
	OriginalUnitPrice float64   `bson:"original_unit_price" json:"original_unit_price"`
	FinalUnitPrice    float64   `bson:"final_unit_price" json:"final_unit_price"`
	CreatedDate       time.Time `bson:"created_date" json:"created_date"`
	Category          string    `bson:"category" json:"category"`
	Brand             string    `bson:"brand,omitempty" json:"brand,omitempty"`
	ItemTitle         string    `bson:"item_title" json:"item_title"`
}

// DiscountAmount is the per-unit discount, never negative.
func (l OrderLine) DiscountAmount() float64 {
	d := l.OriginalUnitPrice - l.FinalUnitPrice
	if d < 0 {
		return 0
	}
	return d
}

// HasDiscount reports whether the line was sold below the original price.
func (l OrderLine) HasDiscount() bool {
	return l.DiscountAmount() > 0
}
