package deals

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"deal_analyzer/internal/domain/entity"
)

// DefaultThreshold is the minimum discount, exclusive, for a record to count
// as a deal.
const DefaultThreshold = 50.0

// FilterAndRank keeps records discounted strictly more than threshold, best
// first. Records with equal discounts keep their input order. The input slice
// is not modified.
func FilterAndRank(records []entity.Deal, threshold float64) []entity.Deal {
	significant := lo.Filter(records, func(d entity.Deal, _ int) bool {
		return d.DiscountPercentage > threshold
	})

	slices.SortStableFunc(significant, func(a, b entity.Deal) int {
		return cmp.Compare(b.DiscountPercentage, a.DiscountPercentage)
	})

	return significant
}
