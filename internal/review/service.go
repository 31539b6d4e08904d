package review

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/receiptscan/internal/draft"
	"github.com/spendlens/receiptscan/internal/pipeline"
)

// Scanner is the slice of the scan pipeline the service needs.
type Scanner interface {
	Scan(ctx context.Context, data []byte, contentType string, onProgress pipeline.ProgressFunc) (*draft.TransactionDraft, error)
}

// IDGenerator generates unique IDs for records.
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles draft review operations.
type Service struct {
	store       Store
	storage     Storage
	scanner     Scanner
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a Service with default ID generator and time source.
func NewService(store Store, storage Storage, scanner Scanner) *Service {
	return &Service{
		store:       store,
		storage:     storage,
		scanner:     scanner,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a Service with custom dependencies for testing.
func NewServiceWithDeps(store Store, storage Storage, scanner Scanner, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		store:       store,
		storage:     storage,
		scanner:     scanner,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and
// truncating length; phone cameras generate very long names.
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ProcessUpload stores the uploaded image, runs the scan pipeline, and
// persists the resulting draft as a pending record. The image file is
// removed again if the scan or the save fails.
func (s *Service) ProcessUpload(ctx context.Context, filename string, data []byte, contentType string) (*Record, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	cleanFilename := sanitizeFilename(filename)

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving image: %w", err)
	}

	d, err := s.scanner.Scan(ctx, data, contentType, func(p pipeline.Progress) {
		slog.Debug("scan progress", "id", id, "state", p.State.String(), "step", p.Step, "percent", p.Percent)
	})
	if err != nil {
		slog.Error("Failed to scan receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	record := &Record{
		ID:          id,
		Draft:       *d,
		Status:      StatusPending,
		Filename:    savedPath,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.SaveRecord(record); err != nil {
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving draft record: %w", err)
	}

	return record, nil
}

// GetRecord retrieves a record by ID.
func (s *Service) GetRecord(id string) (*Record, error) {
	record, err := s.store.GetRecord(id)
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}
	return record, nil
}

// ListRecords returns all records.
func (s *Service) ListRecords() ([]*Record, error) {
	records, err := s.store.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	return records, nil
}

// DeleteRecord removes a record and its stored image.
func (s *Service) DeleteRecord(id string) error {
	record, err := s.store.GetRecord(id)
	if err != nil {
		return fmt.Errorf("getting draft for deletion: %w", err)
	}

	if err := s.storage.Delete(record.Filename); err != nil {
		// Keep going; a stranded image file beats a stranded record.
		slog.Warn("Failed to delete image", "filename", record.Filename, "error", err)
	}

	if err := s.store.DeleteRecord(id); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

// GetImage retrieves the stored source image for a record.
func (s *Service) GetImage(id string) ([]byte, string, error) {
	record, err := s.store.GetRecord(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting draft: %w", err)
	}

	data, err := s.storage.Get(record.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting image: %w", err)
	}

	return data, record.ContentType, nil
}

// DraftUpdate carries field-by-field edits; nil fields are left untouched.
type DraftUpdate struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Date          *string          `json:"date,omitempty"`
	Merchant      *string          `json:"merchant,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Type          *string          `json:"type,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Tax           *decimal.Decimal `json:"tax,omitempty"`
	Discount      *decimal.Decimal `json:"discount,omitempty"`
}

// UpdateDraft applies edits to a pending draft.
func (s *Service) UpdateDraft(id string, update DraftUpdate) (*Record, error) {
	record, err := s.store.GetRecord(id)
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}
	if record.Status == StatusConfirmed {
		return nil, fmt.Errorf("draft %s is already confirmed", id)
	}

	if update.Date != nil {
		if _, err := time.Parse("2006-01-02", *update.Date); err != nil {
			return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		}
		record.Draft.Date = *update.Date
	}
	if update.Type != nil {
		if *update.Type != "expense" && *update.Type != "income" {
			return nil, fmt.Errorf("type must be expense or income")
		}
		record.Draft.Type = *update.Type
	}
	if update.Amount != nil {
		record.Draft.Amount = update.Amount
	}
	if update.Merchant != nil {
		record.Draft.Merchant = *update.Merchant
	}
	if update.Category != nil {
		record.Draft.Category = *update.Category
	}
	if update.Description != nil {
		record.Draft.Description = *update.Description
	}
	if update.PaymentMethod != nil {
		record.Draft.PaymentMethod = *update.PaymentMethod
	}
	if update.Tax != nil {
		record.Draft.Tax = *update.Tax
	}
	if update.Discount != nil {
		record.Draft.Discount = *update.Discount
	}

	record.UpdatedAt = s.timeSource.Now()
	if err := s.store.SaveRecord(record); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}
	return record, nil
}

// ConfirmDraft finalizes a pending draft.
func (s *Service) ConfirmDraft(id string) (*Record, error) {
	record, err := s.store.GetRecord(id)
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}
	if record.Status == StatusConfirmed {
		return nil, fmt.Errorf("draft %s is already confirmed", id)
	}

	record.Status = StatusConfirmed
	record.UpdatedAt = s.timeSource.Now()
	if err := s.store.SaveRecord(record); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}
	return record, nil
}
