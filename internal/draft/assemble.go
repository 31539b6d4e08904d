package draft

import (
	"fmt"

	"github.com/spendlens/receiptscan/internal/extract"
)

// Structural defaults filled by the assembler.
const (
	defaultType          = "expense"
	defaultPaymentMethod = "Not specified"
)

// Assemble composes extractor output and the confidence score into one
// TransactionDraft. Pure aggregation: the extractors already guarantee every
// field is either valid or its documented default.
func Assemble(f extract.Fields, rawText string) TransactionDraft {
	score := Score(f)
	return TransactionDraft{
		Amount:          f.Amount,
		Date:            f.Date,
		Merchant:        f.Merchant,
		Category:        f.Category,
		Description:     fmt.Sprintf("Purchase at %s", f.Merchant),
		Type:            defaultType,
		PaymentMethod:   defaultPaymentMethod,
		Tax:             f.Tax,
		Discount:        f.Discount,
		Items:           f.Items,
		ItemCount:       len(f.Items),
		ConfidenceScore: score,
		ConfidenceTier:  Tier(score),
		RawText:         rawText,
	}
}
