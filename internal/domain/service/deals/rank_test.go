package deals_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deal_analyzer/internal/domain/entity"
	"deal_analyzer/internal/domain/service/deals"
)

func deal(name string, discount float64) entity.Deal {
	return entity.Deal{
		ProductRecord:      entity.ProductRecord{Name: name},
		DiscountPercentage: discount,
	}
}

func names(records []entity.Deal) []string {
	result := make([]string, 0, len(records))
	for _, r := range records {
		result = append(result, r.Name)
	}

	return result
}

func TestFilterAndRank(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name      string
		input     []entity.Deal
		threshold float64
		expected  []string
	}{
		{
			name:      "Threshold is exclusive",
			input:     []entity.Deal{deal("A", 50), deal("B", 50.01), deal("C", 10)},
			threshold: deals.DefaultThreshold,
			expected:  []string{"B"},
		},
		{
			name:      "Sorted descending",
			input:     []entity.Deal{deal("A", 55), deal("B", 90), deal("C", 70)},
			threshold: deals.DefaultThreshold,
			expected:  []string{"B", "C", "A"},
		},
		{
			name:      "Ties keep input order",
			input:     []entity.Deal{deal("A", 60), deal("B", 80), deal("C", 60), deal("D", 60)},
			threshold: deals.DefaultThreshold,
			expected:  []string{"B", "A", "C", "D"},
		},
		{
			name:      "Zero discounts dropped",
			input:     []entity.Deal{deal("A", 0), deal("B", 0)},
			threshold: deals.DefaultThreshold,
			expected:  []string{},
		},
		{
			name:      "Custom threshold",
			input:     []entity.Deal{deal("A", 15), deal("B", 5)},
			threshold: 10,
			expected:  []string{"A"},
		},
		{
			name:      "Empty input",
			input:     nil,
			threshold: deals.DefaultThreshold,
			expected:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.expected, names(deals.FilterAndRank(tc.input, tc.threshold)))
		})
	}
}

func TestFilterAndRankProperties(t *testing.T) {
	rq := require.New(t)

	input := []entity.Deal{
		deal("A", 51), deal("B", 99.5), deal("C", -20), deal("D", 50), deal("E", 75), deal("F", 75), deal("G", 49.99),
	}
	original := append([]entity.Deal(nil), input...)

	ranked := deals.FilterAndRank(input, deals.DefaultThreshold)

	rq.Equal(original, input)
	rq.Len(ranked, 4)

	for i, d := range ranked {
		rq.Greater(d.DiscountPercentage, deals.DefaultThreshold)

		if i > 0 {
			rq.GreaterOrEqual(ranked[i-1].DiscountPercentage, d.DiscountPercentage)
		}
	}
}
