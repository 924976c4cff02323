// Package profile derives per-user purchasing profiles from order lines and
// classifies shopping history through the profiling AI.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// ErrNoOrders is returned when the user has no order lines. Personalized
// generators treat it as "produce nothing", not as a failure.
var ErrNoOrders = errors.New("no orders found for user")

// Classifier determines opaque user attributes from shopping history lines.
// Implementations must not be required for core logic: a failed call is
// recovered with fallback attributes.
type Classifier interface {
	Classify(ctx context.Context, shoppingLines []string) (models.UserAttributes, error)
}

// Builder computes user profiles against an immutable snapshot.
type Builder struct {
	snapshot   *store.Snapshot
	classifier Classifier
}

// NewBuilder creates a profile builder.
func NewBuilder(snapshot *store.Snapshot, classifier Classifier) *Builder {
	return &Builder{snapshot: snapshot, classifier: classifier}
}

// Build derives the profile for one user. Returns ErrNoOrders when the user
// has no order lines.
func (b *Builder) Build(ctx context.Context, userID string) (models.UserProfile, error) {
	lines := b.snapshot.OrdersByUser(userID)
	if len(lines) == 0 {
		return models.UserProfile{}, fmt.Errorf("%w: %s", ErrNoOrders, userID)
	}

	p := models.UserProfile{UserID: userID}
	p.DiscountPreference = discountPreference(lines)
	p.AverageDiscount = averageDiscount(lines)
	p.MostFrequentProducts = mostFrequentProducts(lines)
	p.AverageDaysBetween, p.SingleOrder = averageDaysBetweenOrders(lines)
	p.SeasonalTrend, p.SeasonalTrendMonth = seasonalTrend(lines)
	p.UserAttributes = b.classifyAttributes(ctx, lines, p.MostFrequentProducts)
	return p, nil
}

// discountPreference is the fraction of ordered quantity bought discounted.
// nil when the user has no quantity at all.
func discountPreference(lines []models.OrderLine) *float64 {
	total, discounted := 0, 0
	for _, l := range lines {
		total += l.Quantity
		if l.HasDiscount() {
			discounted += l.Quantity
		}
	}
	if total == 0 {
		return nil
	}
	pref := round4(float64(discounted) / float64(total))
	return &pref
}

// averageDiscount is the mean fractional discount across discounted lines
// only. Lines with a zero original price are excluded, not treated as
// infinite.
func averageDiscount(lines []models.OrderLine) float64 {
	sum, n := 0.0, 0
	for _, l := range lines {
		if !l.HasDiscount() || l.OriginalUnitPrice == 0 {
			continue
		}
		sum += l.DiscountAmount() / l.OriginalUnitPrice
		n++
	}
	if n == 0 {
		return 0
	}
	return round4(sum / float64(n))
}

// mostFrequentProducts counts distinct orders per SKU and keeps SKUs ordered
// at least twice, sorted descending by count. Ties keep first-seen order.
func mostFrequentProducts(lines []models.OrderLine) []models.FrequentProduct {
	type skuCount struct {
		orders map[string]bool
		title  string
	}
	counts := make(map[string]*skuCount)
	var firstSeen []string
	for _, l := range lines {
		c := counts[l.SKU]
		if c == nil {
			c = &skuCount{orders: make(map[string]bool), title: l.ItemTitle}
			counts[l.SKU] = c
			firstSeen = append(firstSeen, l.SKU)
		}
		c.orders[l.OrderNumber] = true
	}

	var frequent []models.FrequentProduct
	for _, sku := range firstSeen {
		c := counts[sku]
		if len(c.orders) >= 2 {
			frequent = append(frequent, models.FrequentProduct{
				SKU:          sku,
				ItemTitle:    c.title,
				TimesOrdered: len(c.orders),
			})
		}
	}
	sort.SliceStable(frequent, func(i, j int) bool {
		return frequent[i].TimesOrdered > frequent[j].TimesOrdered
	})
	return frequent
}

// averageDaysBetweenOrders is the mean gap in days between consecutive
// distinct order dates. Each gap is floored to whole days before averaging,
// so intraday spacing never produces fractional gaps. The second return is
// true when there was only one distinct order, in which case no average
// exists.
func averageDaysBetweenOrders(lines []models.OrderLine) (float64, bool) {
	seen := make(map[string]bool)
	var dates []int64
	for _, l := range lines {
		key := l.OrderNumber + "|" + l.CreatedDate.Format("2006-01-02 15:04:05")
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, l.CreatedDate.Unix())
	}
	if len(dates) < 2 {
		return 0, true
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	totalDays := 0.0
	for i := 1; i < len(dates); i++ {
		totalDays += float64((dates[i] - dates[i-1]) / (24 * 60 * 60))
	}
	avg := totalDays / float64(len(dates)-1)
	return math.Round(avg*100) / 100, false
}

// seasonalTrend reports the dominant order month when its count is at least
// twice the mean across observed months.
func seasonalTrend(lines []models.OrderLine) (string, int) {
	counts := make(map[int]int)
	for _, l := range lines {
		counts[int(l.CreatedDate.Month())]++
	}
	if len(counts) == 0 {
		return models.NoSeasonalTrend, 0
	}

	total, maxCount, maxMonth := 0, 0, 0
	for m := 1; m <= 12; m++ {
		c := counts[m]
		total += c
		if c > maxCount {
			maxCount = c
			maxMonth = m
		}
	}
	mean := float64(total) / float64(len(counts))
	if float64(maxCount) >= 2*mean {
		return fmt.Sprintf("User orders more in month %d.", maxMonth), maxMonth
	}
	return models.NoSeasonalTrend, 0
}

// classifyAttributes sends the shopping history of the user's top 10
// frequent SKUs to the profiling AI. Any failure degrades to the fallback
// attributes instead of failing the profile.
func (b *Builder) classifyAttributes(ctx context.Context, lines []models.OrderLine, frequent []models.FrequentProduct) models.UserAttributes {
	topSKUs := make(map[string]bool)
	for i, fp := range frequent {
		if i == 10 {
			break
		}
		topSKUs[fp.SKU] = true
	}

	seen := make(map[string]bool)
	var shoppingLines []string
	for _, l := range lines {
		if !topSKUs[l.SKU] {
			continue
		}
		entry := l.Category + " | " + l.Brand + " | " + l.ItemTitle
		if seen[entry] {
			continue
		}
		seen[entry] = true
		shoppingLines = append(shoppingLines, entry)
	}

	if b.classifier == nil || len(shoppingLines) == 0 {
		return models.FallbackAttributes()
	}
	attrs, err := b.classifier.Classify(ctx, shoppingLines)
	if err != nil {
		return models.FallbackAttributes()
	}
	return attrs
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
