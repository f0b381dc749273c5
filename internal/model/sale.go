package model

import "github.com/google/uuid"

// Sale is an immutable stock-out record. Total is always Quantity * UnitPrice
// and is computed at creation, never mutated afterwards.
type Sale struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `gorm:"not null" json:"unit_price" validate:"gte=0"`
	Total     float64   `gorm:"not null" json:"total"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
}
