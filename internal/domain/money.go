package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatBalance renders a monetary amount for display in the given locale.
// The locale is an explicit parameter rather than process-wide state; callers
// that have no preference pass the configured default tag.
func FormatBalance(amount decimal.Decimal, tag language.Tag) string {
	f, _ := amount.Float64()
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.USD.Amount(f))
}

// ParseLocale resolves a BCP 47 tag, falling back to en-US on garbage input.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}
