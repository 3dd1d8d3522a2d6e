package pricing

import (
	"math"
	"strconv"
	"strings"

	"deal_analyzer/internal/domain"
	"deal_analyzer/pkg/errcodes"
)

const (
	CurrencySymbol     = "₫"
	ThousandsSeparator = ","
)

// ParseCurrency converts a đồng amount such as "₫1,234,567" into a number.
func ParseCurrency(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, CurrencySymbol, "")
	cleaned = strings.ReplaceAll(cleaned, ThousandsSeparator, "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return 0, domain.NewError(errcodes.ParseError, "empty amount: "+strconv.Quote(raw))
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.ParseError, "invalid amount "+strconv.Quote(raw))
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, domain.NewError(errcodes.ParseError, "non-finite amount "+strconv.Quote(raw))
	}

	return value, nil
}
