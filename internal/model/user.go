package model

import "time"

// User represents an authenticated user who owns an ingredient inventory
// and generated meal plans.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Ingredients []Ingredient `json:"ingredients,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MealPlans   []MealPlan   `json:"meal_plans,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
