// Package money renders decimal amounts for people.
package money

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = "USD"

// Format renders amount in currency using the currency's symbol, separators
// and minor-unit precision, e.g. $1,234.50. Amounts are rounded half away
// from zero to the minor unit. Unknown codes fall back to two decimals
// suffixed with the code.
func Format(amount decimal.Decimal, currency string) string {
	cur := currencyOf(currency)
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// SignedFormat is Format with an explicit sign for non-zero amounts.
func SignedFormat(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + Format(amount, currency)
	}
	return Format(amount, currency)
}

// Percent renders p, already scaled to 0-100, with places decimals.
func Percent(p decimal.Decimal, places int32) string {
	return p.StringFixed(places) + "%"
}

func currencyOf(code string) *money.Currency {
	if code == "" {
		code = DefaultCurrency
	}
	if cur := money.GetCurrency(code); cur != nil {
		return cur
	}
	return &money.Currency{Code: code, Fraction: 2, Grapheme: code, Template: "1 $", Decimal: ".", Thousand: ","}
}
