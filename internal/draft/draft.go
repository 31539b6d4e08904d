// Package draft assembles extracted fields into transaction drafts and
// scores how confident the extraction was.
package draft

import (
	"github.com/shopspring/decimal"

	"github.com/spendlens/receiptscan/internal/extract"
)

// Confidence tiers.
const (
	TierHigh   = "High"
	TierMedium = "Medium"
	TierLow    = "Low"
)

// TransactionDraft is the assembled output of one scan. It is immutable as
// emitted by the pipeline; the caller edits a stored copy before confirming.
type TransactionDraft struct {
	Amount          *decimal.Decimal   `json:"amount"`
	Date            string             `json:"date"`
	Merchant        string             `json:"merchant"`
	Category        string             `json:"category"`
	Description     string             `json:"description"`
	Type            string             `json:"type"`
	PaymentMethod   string             `json:"payment_method"`
	Tax             decimal.Decimal    `json:"tax"`
	Discount        decimal.Decimal    `json:"discount"`
	Items           []extract.LineItem `json:"items"`
	ItemCount       int                `json:"item_count"`
	ConfidenceScore int                `json:"confidence_score"`
	ConfidenceTier  string             `json:"confidence_tier"`
	RawText         string             `json:"raw_text,omitempty"`
}
