package extract

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// taxPatterns and discountPatterns are independent sets applied to the whole
// text; each field takes the maximum in-range value across all its matches.
var taxPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:cgst|sgst|igst|gst|vat|tax)\s*(?:@?\s*[0-9.]+\s*%)?\s*[:\-]?\s*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`(?i)tax\s*amount\s*[:\-]?\s*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
}

var discountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:discount|savings?|off)\s*[:\-]?\s*\(?\s*-?\s*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`(?i)you\s*saved\s*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
}

var taxUpperBound = decimal.NewFromInt(10_000)

// TaxAndDiscount extracts the tax and discount figures, each defaulting to
// zero when no pattern matches in range.
func TaxAndDiscount(text string) (tax, discount decimal.Decimal) {
	return maxMatch(text, taxPatterns), maxMatch(text, discountPatterns)
}

func maxMatch(text string, patterns []*regexp.Regexp) decimal.Decimal {
	best := decimal.Zero
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			d, err := parseDecimal(m[1])
			if err != nil {
				continue
			}
			if d.Sign() <= 0 || d.GreaterThanOrEqual(taxUpperBound) {
				continue
			}
			if d.GreaterThan(best) {
				best = d
			}
		}
	}
	return best
}
