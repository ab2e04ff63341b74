// Package money converts between decimal major-unit amounts and the integer
// minor units payment gateways work with.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const minorUnitsExponent = -2

var ErrInvalidAmount = errors.New("invalid amount")

var hundred = decimal.NewFromInt(100)

var printer = message.NewPrinter(language.English)

// ToMinorUnits returns round(amount * 100), rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, minorUnitsExponent)
}

// FromFloat rejects NaN and infinities, which decimal cannot represent.
func FromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
	}
	return decimal.NewFromFloat(v), nil
}

// HasCentPrecision reports whether amount has at most two fractional digits.
func HasCentPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// Symbol returns the printed prefix for an ISO currency code.
func Symbol(currency string) string {
	switch strings.ToLower(strings.TrimSpace(currency)) {
	case "", "usd", "cad", "aud":
		return "$"
	case "brl":
		return "R$"
	case "eur":
		return "€"
	case "gbp":
		return "£"
	default:
		return strings.ToUpper(currency) + " "
	}
}

// Format prints amount with two decimals and thousands separators,
// e.g. Format(1234.5, "$") == "$1,234.50".
func Format(amount decimal.Decimal, symbol string) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(whole)).Mul(hundred).IntPart()
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, printer.Sprintf("%d", whole), cents)
}
