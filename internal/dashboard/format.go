package dashboard

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Amounts use comma thousands and dot decimals regardless of the BRL symbol.
var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a currency amount with two decimals and grouping.
func FormatAmount(d decimal.Decimal) string {
	return amountPrinter.Sprintf("%v", number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatBRL prefixes FormatAmount with the real symbol.
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + FormatAmount(d)
}

// DayLabel is the day/month label used on chart axes and tables.
const DayLabel = "02/01"
