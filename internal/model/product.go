package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog entity: a sellable handmade item. Orders happen
// out-of-band through WhatsApp, so the product carries its own contact fields
// instead of referencing an order subsystem.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text;not null"`
	// Price is stored with 2 fractional digits; services round before writing.
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImagePath       string          `gorm:"not null"`
	Category        string          `gorm:"index;not null"`
	WhatsappNumber  string          `gorm:"not null"`
	WhatsappMessage *string
	IsActive        bool `gorm:"not null;default:true;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
