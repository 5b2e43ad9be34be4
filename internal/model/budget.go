package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a user's single collection of spending-plan items. The unique
// index on UserID enforces at most one budget per user at the store level.
type Budget struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID    `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Items     []BudgetItem `json:"items" gorm:"foreignKey:BudgetID"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BudgetItem is one named amount within a budget. Items are addressed by ID,
// never by position; Position only preserves insertion order for display.
type BudgetItem struct {
	ID       uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	BudgetID uuid.UUID       `json:"-" gorm:"type:char(36);not null;index"`
	Name     string          `json:"name" gorm:"size:255;not null"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Category string          `json:"category" gorm:"size:255;not null"`
	Position int             `json:"-" gorm:"not null;default:0"`
}

// BeforeCreate sets UUID before creating the record.
func (i *BudgetItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
