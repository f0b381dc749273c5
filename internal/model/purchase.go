package model

import "github.com/google/uuid"

// Purchase is an immutable stock-in record. Supplier is free text and may be
// empty.
type Purchase struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Supplier  string    `gorm:"type:varchar(255)" json:"supplier"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
}
