package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is one line of a user's inventory. Quantity is always
// non-negative; negative input is rejected at the service layer.
type Ingredient struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Name      string          `json:"name" gorm:"size:255;not null;index"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null;default:0"`
	Unit      string          `json:"unit" gorm:"size:50;not null;default:'pcs'"`
	Notes     string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
