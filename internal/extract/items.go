package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one purchased item recovered from the receipt body.
type LineItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// summaryLine filters out totals, taxes, payment footers and header
// boilerplate so they are not mistaken for purchased items.
var summaryLine = regexp.MustCompile(`(?i)\b(?:sub\s*total|total|tax|gst|cgst|sgst|igst|vat|discount|payment|paid|balance|change|cash|card|upi|thank|receipt|invoice|bill|tel|phone|date|time)\b`)

// itemLine expects an item name followed by a trailing price.
var itemLine = regexp.MustCompile(`(?i)^(.{3,}?)\s+(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*$`)

// qtyUnit recovers an embedded "<qty> x <unit price>" sub-pattern.
var qtyUnit = regexp.MustCompile(`(?i)\b(\d{1,3})\s*[x@×]\s*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)

var unitPriceUpperBound = decimal.NewFromInt(10_000)

// Items scans the text line by line and returns every line that parses as a
// purchased item with a unit price in (0, 10000). Quantity defaults to 1
// when no qty sub-pattern is present.
func Items(text string) []LineItem {
	var items []LineItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || summaryLine.MatchString(line) {
			continue
		}
		m := itemLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		price, err := parseDecimal(m[2])
		if err != nil {
			continue
		}

		qty := 1
		unit := price
		if qm := qtyUnit.FindStringSubmatch(name); qm != nil {
			n, convErr := strconv.Atoi(qm[1])
			u, parseErr := parseDecimal(qm[2])
			if convErr == nil && parseErr == nil && n > 0 {
				qty, unit = n, u
			}
			name = strings.TrimSpace(strings.Replace(name, qm[0], "", 1))
		}

		if len(name) <= 2 || !containsLetter(name) {
			continue
		}
		if unit.Sign() <= 0 || unit.GreaterThanOrEqual(unitPriceUpperBound) {
			continue
		}
		items = append(items, LineItem{
			Name:      name,
			Quantity:  qty,
			UnitPrice: unit,
			LineTotal: unit.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return items
}
