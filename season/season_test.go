package season

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNoOrders(t *testing.T) {
	assert.Equal(t, AllYear, Classify(map[int]int{}))
	assert.Equal(t, AllYear, Classify(nil))
}

func TestClassifyUniformIsAllYear(t *testing.T) {
	counts := make(map[int]int)
	for m := 1; m <= 12; m++ {
		counts[m] = 4
	}
	// Every month equals the mean, nothing reaches 1.5x.
	assert.Equal(t, AllYear, Classify(counts))
}

func TestClassifySingleMonth(t *testing.T) {
	counts := map[int]int{6: 10, 1: 1, 2: 1}
	assert.Equal(t, "june", Classify(counts))
}

func TestClassifyConsecutiveRange(t *testing.T) {
	counts := map[int]int{6: 10, 7: 10, 1: 1, 2: 1, 3: 1}
	assert.Equal(t, "june-july", Classify(counts))
}

func TestClassifyWrapsYearBoundary(t *testing.T) {
	// November through January is one cyclic run; the label spans its
	// earliest and latest calendar months.
	counts := map[int]int{11: 10, 12: 10, 1: 10, 5: 1, 6: 1}
	assert.Equal(t, "january-december", Classify(counts))
}

func TestClassifyPicksLongestRun(t *testing.T) {
	// Two popular clusters; the longer one wins.
	counts := map[int]int{2: 10, 6: 10, 7: 10, 8: 10}
	assert.Equal(t, "june-august", Classify(counts))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "january", MonthName(1))
	assert.Equal(t, "december", MonthName(12))
}

func TestMonthNumber(t *testing.T) {
	assert.Equal(t, 6, MonthNumber("jun"))
	assert.Equal(t, 6, MonthNumber("June"))
	assert.Equal(t, 11, MonthNumber(" november "))
	assert.Equal(t, 0, MonthNumber("ju"))
	assert.Equal(t, 0, MonthNumber("notamonth"))
}
