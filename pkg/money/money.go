// Package money renders prices as whole-unit, locale-grouped currency strings.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultSymbol = "₦"
	DefaultLocale = "en-NG"
)

// Formatter prints amounts as <symbol><grouped integer part>. The amount is
// first fixed to two decimal places, then everything from the decimal point on
// is dropped, so 1999.99 prints as 1,999 and 1999.999 as 2,000.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a formatter. Empty arguments fall back to the naira defaults;
// an unparseable locale falls back to English grouping.
func NewFormatter(symbol, locale string) *Formatter {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}
}

// Default returns the en-NG naira formatter.
func Default() *Formatter {
	return NewFormatter(DefaultSymbol, DefaultLocale)
}

// Symbol is the currency prefix in use after fallbacks.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Format renders amount in whole currency units.
func (f *Formatter) Format(amount decimal.Decimal) string {
	whole := WholeUnits(amount)
	sign := ""
	if whole.IsNegative() {
		sign = "-"
		whole = whole.Neg()
	}
	return sign + f.symbol + f.printer.Sprintf("%d", whole.IntPart())
}

// WholeUnits fixes amount to cents and discards the fraction.
func WholeUnits(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2).Truncate(0)
}

// Multiply returns price*quantity.
func Multiply(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
