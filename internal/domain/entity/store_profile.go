package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreProfile holds the store header printed on every invoice. The
// application keeps a single row and seeds it with defaults on first start.
type StoreProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StoreName   string `gorm:"size:255" json:"store_name"`
	Address     string `gorm:"size:500" json:"address"`
	Phone       string `gorm:"size:50" json:"phone"`
	AltPhone    string `gorm:"size:50" json:"alt_phone"`
	TaxID       string `gorm:"size:50" json:"tax_id"`
	ManagerName string `gorm:"size:255" json:"manager_name"`
}

// BeforeCreate generates a UUID before creating a new profile
func (p *StoreProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreProfile model
func (StoreProfile) TableName() string {
	return "store_profiles"
}

// Snapshot converts the profile into the value embedded in computed invoices.
func (p *StoreProfile) Snapshot() StoreInfo {
	return StoreInfo{
		StoreName:   p.StoreName,
		Address:     p.Address,
		Phone:       p.Phone,
		AltPhone:    p.AltPhone,
		TaxID:       p.TaxID,
		ManagerName: p.ManagerName,
	}
}
