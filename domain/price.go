package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Prices are stored as NUMERIC(10,2).
const (
	PriceMaxDigits     = 10
	PriceDecimalPlaces = 2
)

var priceUpperBound = decimal.New(1, PriceMaxDigits-PriceDecimalPlaces)

// ValidatePrice reports whether d fits in PriceMaxDigits digits with at most
// PriceDecimalPlaces of them after the decimal point.
func ValidatePrice(d decimal.Decimal) error {
	if !d.Equal(d.Round(PriceDecimalPlaces)) {
		return fmt.Errorf("price must have at most %d decimal places", PriceDecimalPlaces)
	}

	if d.Abs().GreaterThanOrEqual(priceUpperBound) {
		return fmt.Errorf("price must have at most %d digits before the decimal point", PriceMaxDigits-PriceDecimalPlaces)
	}

	return nil
}

// FormatPrice renders d with exactly PriceDecimalPlaces decimals.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(PriceDecimalPlaces)
}
