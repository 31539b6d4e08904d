// Package extract turns raw recognized receipt text into structured
// transaction fields. Every extractor is a pure function over the text:
// a miss resolves to the documented default and never to an error.
package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fields holds the output of all extractors for one document.
type Fields struct {
	Amount    *decimal.Decimal
	Date      string
	DateFound bool
	Merchant  string
	Category  string
	Items     []LineItem
	Tax       decimal.Decimal
	Discount  decimal.Decimal
}

// All runs every extractor over the text. The now argument anchors the
// date fallback so callers (and tests) control what "today" means.
func All(text string, now time.Time) Fields {
	f := Fields{
		Amount:   Amount(text),
		Merchant: Merchant(text),
		Items:    Items(text),
	}
	f.Date, f.DateFound = Date(text, now)
	f.Category = Category(f.Merchant, text)
	f.Tax, f.Discount = TaxAndDiscount(text)
	return f
}

// parseDecimal parses a numeric match after stripping thousands separators.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
