package model

import "time"

// TaskTemplate is a reusable blueprint for tasks. Instantiating one is a
// client-side copy into a task-create request, never a server transaction.
type TaskTemplate struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index" json:"userId"`
	CategoryID  *uint      `gorm:"index" json:"categoryId"`
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Priority    string     `gorm:"default:medium" json:"priority"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category"`
}
