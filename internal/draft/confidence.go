package draft

import "github.com/spendlens/receiptscan/internal/extract"

// Additive weights per successfully extracted field.
const (
	weightAmount   = 30
	weightMerchant = 25
	weightDate     = 20
	weightItems    = 15
	weightCategory = 10
)

// Score computes the 0-100 confidence score for a set of extracted fields.
// The sum of the weights is exactly 100, but the cap is kept as an explicit
// invariant rather than an arithmetic accident.
func Score(f extract.Fields) int {
	score := 0
	if f.Amount != nil {
		score += weightAmount
	}
	if f.Merchant != extract.UnknownMerchant {
		score += weightMerchant
	}
	if f.DateFound {
		score += weightDate
	}
	if len(f.Items) > 0 {
		score += weightItems
	}
	if f.Category != extract.CategoryOther {
		score += weightCategory
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Tier maps a score to its label: High at 70 and above, Medium at 40.
func Tier(score int) string {
	switch {
	case score >= 70:
		return TierHigh
	case score >= 40:
		return TierMedium
	default:
		return TierLow
	}
}
