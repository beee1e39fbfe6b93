package budget

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/twoloonies/loonies/internal/model"
)

// Amounts outside these bounds are treated as unparseable. Exponent notation
// like "1e20000000" would otherwise expand into millions of digits.
const (
	maxExponent = 20
	maxDigits   = 30
)

var (
	payPeriodsPerYear = decimal.NewFromInt(26)
	monthsPerYear     = decimal.NewFromInt(12)
	hundred           = decimal.NewFromInt(100)
)

// ParseAmount parses a raw field value for aggregation. Empty, unparseable and
// negative values all count as zero.
func ParseAmount(raw string) decimal.Decimal {
	v, ok := parseDecimal(raw)
	if !ok || v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// ParseNonNegative parses user input that is about to be committed to a field.
func ParseNonNegative(raw string) (decimal.Decimal, error) {
	v, ok := parseDecimal(raw)
	if !ok || v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return v, nil
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := v.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	if len(strings.TrimPrefix(v.Coefficient().String(), "-")) > maxDigits {
		return decimal.Zero, false
	}
	return v, true
}

// Round2 rounds a monetary value to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MonthlyEquivalent converts a raw field value to its monthly amount.
// Bi-weekly amounts are scaled by 26/12 and rounded to cents; monthly amounts
// pass through unchanged.
func MonthlyEquivalent(field model.FieldDefinition, raw string) decimal.Decimal {
	v := ParseAmount(raw)
	if field.IsBiweekly() {
		return Round2(v.Mul(payPeriodsPerYear).Div(monthsPerYear))
	}
	return v
}

// percentOf returns part/whole as a percentage with one decimal, or zero when
// whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}
