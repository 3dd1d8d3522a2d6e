package pricing

import (
	"fmt"
	"math"

	"deal_analyzer/internal/domain"
	"deal_analyzer/pkg/errcodes"
)

// DiscountResult computes (original - current) / original * 100.
func DiscountResult(original, current string) (float64, error) {
	o, err := ParseCurrency(original)
	if err != nil {
		return 0, fmt.Errorf("original price: %w", err)
	}

	c, err := ParseCurrency(current)
	if err != nil {
		return 0, fmt.Errorf("current price: %w", err)
	}

	if o == 0 {
		return 0, domain.NewError(errcodes.ParseError, "original price is zero")
	}

	discount := (o - c) / o * 100
	if math.IsNaN(discount) || math.IsInf(discount, 0) {
		return 0, domain.NewError(errcodes.ParseError, "discount is not finite")
	}

	return discount, nil
}

// Discount is DiscountResult with every failure collapsed to 0, so a
// malformed row lands below any positive threshold instead of failing its
// file. A zero result does not tell "no discount" from "unparseable".
func Discount(original, current string) float64 {
	discount, err := DiscountResult(original, current)
	if err != nil {
		return 0
	}

	return discount
}
