package model

import "time"

// MealPlan is one generated weekly plan for a user. PlanJSON holds the
// serialized plan payload and is immutable once written: regenerating a week
// replaces the row with a fresh one instead of updating it.
type MealPlan struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index:idx_mealplans_user_week"`
	GeneratedOn time.Time `json:"generated_on" gorm:"not null"`
	WeekStart   string    `json:"week_start" gorm:"size:10;not null;index:idx_mealplans_user_week"` // ISO date, Monday of the week
	PlanJSON    string    `json:"plan_json" gorm:"type:json;not null"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
