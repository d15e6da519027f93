package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedInvoice persists a finalized ComputedInvoice as an ordered list entry
// keyed by a generated identifier and timestamp. The payload is the computed
// document itself; the scalar columns exist for listing and reporting.
type SavedInvoice struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo string         `gorm:"size:100;not null;index" json:"invoice_no"`
	Customer  string         `gorm:"size:255" json:"customer,omitempty"`
	Total     int64          `gorm:"not null" json:"-"` // grand total in paise
	Payload   []byte         `gorm:"type:jsonb;not null" json:"-"`
	SavedAt   time.Time      `gorm:"not null;index" json:"saved_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON exposes the paise-stored total as a decimal for API responses
func (s SavedInvoice) MarshalJSON() ([]byte, error) {
	type Alias SavedInvoice
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(s),
		Total: float64(s.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new saved invoice
func (s *SavedInvoice) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SavedInvoice model
func (SavedInvoice) TableName() string {
	return "saved_invoices"
}

// Document decodes the persisted ComputedInvoice payload.
func (s *SavedInvoice) Document() (*ComputedInvoice, error) {
	var doc ComputedInvoice
	if err := json.Unmarshal(s.Payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
