// Package season classifies per-SKU month histograms into a canonical
// "popular months" label: a single month name, a range like "june-july",
// or "all year".
package season

import "strings"

// AllYear is the label for products without a dominant selling season.
const AllYear = "all year"

var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// MonthName returns the lowercase English name for month 1-12.
func MonthName(m int) string {
	return monthNames[m-1]
}

// MonthNumber resolves a month name or its 3+ letter prefix to 1-12.
// Returns 0 when nothing matches.
func MonthNumber(name string) int {
	needle := strings.ToLower(strings.TrimSpace(name))
	if len(needle) < 3 {
		return 0
	}
	for i, full := range monthNames {
		if strings.HasPrefix(full, needle) {
			return i + 1
		}
	}
	return 0
}

// Classify maps a month -> order count histogram to a seasonality label.
// Months at or above 1.5x the mean count are popular; the longest cyclic run
// of popular months (December wraps into January) becomes the label, spanning
// the run's earliest and latest calendar months.
func Classify(counts map[int]int) string {
	total := 0
	for m := 1; m <= 12; m++ {
		total += counts[m]
	}
	if total == 0 {
		return AllYear
	}

	threshold := float64(total) / 12 * 1.5
	var popular []int
	for m := 1; m <= 12; m++ {
		if float64(counts[m]) >= threshold {
			popular = append(popular, m)
		}
	}
	if len(popular) == 0 {
		return AllYear
	}

	// Duplicate the sorted popular months shifted by 12 so a run that wraps
	// the year boundary shows up as consecutive integers.
	cyclic := make([]int, 0, 2*len(popular))
	cyclic = append(cyclic, popular...)
	for _, m := range popular {
		cyclic = append(cyclic, m+12)
	}

	longest := []int{}
	current := []int{cyclic[0]}
	for i := 1; i < len(cyclic); i++ {
		if cyclic[i] == cyclic[i-1]+1 {
			current = append(current, cyclic[i])
			continue
		}
		if len(current) > len(longest) {
			longest = current
		}
		current = []int{cyclic[i]}
	}
	if len(current) > len(longest) {
		longest = current
	}

	start, end := 13, 0
	for _, m := range longest {
		mod := (m-1)%12 + 1
		if mod < start {
			start = mod
		}
		if mod > end {
			end = mod
		}
	}

	if start == end {
		return MonthName(start)
	}
	return MonthName(start) + "-" + MonthName(end)
}
