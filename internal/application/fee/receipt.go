package fee

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ReceiptFormatter renders money amounts for receipts in a locale
type ReceiptFormatter struct {
	printer  *message.Printer
	currency string
}

// NewReceiptFormatter creates a formatter for the given BCP 47 locale and
// ISO 4217 currency code. An unparseable locale falls back to English.
func NewReceiptFormatter(locale, currency string) *ReceiptFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &ReceiptFormatter{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}
}

// Format renders an amount with grouping and two decimals, prefixed by the currency code
func (f *ReceiptFormatter) Format(amount decimal.Decimal) string {
	value := amount.Round(2).InexactFloat64()
	return f.printer.Sprintf("%s %v", f.currency, number.Decimal(value, number.Scale(2)))
}
