package bundles

import (
	"sort"

	"github.com/raushankrgupta/bundle-strategist/models"
)

// Rank sorts evaluated bundles descending by added profit. The sort is
// stable: equal-profit bundles keep their relative order from the
// concatenated generator output, and no normalization is applied across
// strategies.
func Rank(evaluated []models.EvaluatedBundle) []models.EvaluatedBundle {
	ranked := make([]models.EvaluatedBundle, len(evaluated))
	copy(ranked, evaluated)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AddedProfit > ranked[j].AddedProfit
	})
	return ranked
}
