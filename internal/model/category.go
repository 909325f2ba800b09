package model

import "time"

// DefaultCategoryColor is applied when a category is created without one.
const DefaultCategoryColor = "#6366f1"

// Category groups tasks by area (work, health, study, etc.).
// Names are unique per owner, not globally.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_user_category_name,unique" json:"userId"`
	Name        string    `gorm:"index:idx_user_category_name,unique" json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
