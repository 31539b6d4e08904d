// Package review stages scanned transaction drafts for human review: the
// original upload is kept on disk, the draft in bbolt, and the HTTP surface
// lets a caller list, edit field by field, confirm or discard drafts.
package review

import (
	"time"

	"github.com/spendlens/receiptscan/internal/draft"
)

// Review lifecycle states for a stored draft.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Record is a TransactionDraft persisted for review, plus the stored source
// image and bookkeeping fields.
type Record struct {
	ID          string                 `json:"id"`
	Draft       draft.TransactionDraft `json:"draft"`
	Status      string                 `json:"status"`
	Filename    string                 `json:"filename"`
	ContentType string                 `json:"content_type"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
