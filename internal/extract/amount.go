package extract

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// amountPatterns are tried against the whole document. Labeled totals come
// first, then bare currency markers, then any decimal-looking figure. All
// matches from all patterns enter the candidate set.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:grand\s*total|total|amount\s*(?:due|paid|payable)?|amt|net\s*payable|paid|payable)\s*[:\-]?\s*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`(?i)(?:₹|rs\.?\s*|inr\s*)([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`\b([0-9][0-9,]*\.[0-9]{2})\b`),
}

var amountUpperBound = decimal.NewFromInt(1_000_000)

// Amount returns the largest currency-like figure in (0, 1000000) found in
// the text, or nil when no candidate is in range. Receipts print the grand
// total as the largest such figure, so the maximum wins over any ordering.
func Amount(text string) *decimal.Decimal {
	var best *decimal.Decimal
	for _, re := range amountPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			d, err := parseDecimal(m[1])
			if err != nil {
				continue
			}
			if d.Sign() <= 0 || d.GreaterThanOrEqual(amountUpperBound) {
				continue
			}
			if best == nil || d.GreaterThan(*best) {
				v := d
				best = &v
			}
		}
	}
	return best
}
