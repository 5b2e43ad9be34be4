package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is one dated spending record owned by a user. Unlike budget items,
// expenses are top-level entities with their own lifecycle.
type Expense struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Category  string          `json:"category" gorm:"size:255;not null"`
	Note      string          `json:"note" gorm:"size:1024;not null;default:''"`
	Date      time.Time       `json:"date" gorm:"not null;index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
