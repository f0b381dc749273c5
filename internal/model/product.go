package model

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Code          string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name          string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	PurchasePrice float64 `gorm:"not null;default:0" json:"purchase_price" validate:"gte=0"`
	SalePrice     float64 `gorm:"not null;default:0" json:"sale_price" validate:"gte=0"`
	Quantity      int     `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`

	// Nullable on purpose: deleting a category leaves products uncategorized.
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`

	ExpiryDate *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`
}

// CategoryName resolves the display name, tolerating a dangling reference.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return "N/A"
	}
	return p.Category.Name
}

// StockValue is the product's contribution to total inventory value.
func (p *Product) StockValue() float64 {
	return float64(p.Quantity) * p.PurchasePrice
}
