package model

import "github.com/google/uuid"

// Journal action tags.
const (
	ActionSale        = "SALE"
	ActionPurchase    = "PURCHASE"
	ActionUserCreated = "USER_CREATED"
	ActionUserDeleted = "USER_DELETED"
	ActionBootstrap   = "BOOTSTRAP"
)

// JournalEntry is an append-only audit record. The application never updates
// or deletes rows in this table.
type JournalEntry struct {
	BaseModel
	Action  string     `gorm:"type:varchar(50);not null;index" json:"action"`
	UserID  *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User    *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Details string     `gorm:"type:text" json:"details"`
}

// UserName resolves the actor's display name, tolerating a deleted user.
func (j *JournalEntry) UserName() string {
	if j.User == nil {
		return "N/A"
	}
	return j.User.Name
}
