package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is a catalog entry visible to every user. CreatedBy is nullable:
// deleting the creator orphans the recipe rather than removing it.
type Recipe struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null;index"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	Instructions string    `json:"instructions,omitempty" gorm:"type:text"`
	CreatedBy    *uint     `json:"created_by,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Creator     *User              `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient names a required ingredient by free text. It is matched
// against inventory names by normalization, deliberately not a foreign key
// into the ingredients table.
type RecipeIngredient struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	RecipeID         uint            `json:"recipe_id" gorm:"not null;index"`
	IngredientName   string          `json:"ingredient_name" gorm:"size:255;not null"`
	RequiredQuantity decimal.Decimal `json:"required_quantity" gorm:"type:decimal(12,3);not null;default:1"`
	Unit             string          `json:"unit" gorm:"size:50;not null;default:'pcs'"`

	// Relations
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID"`
}
