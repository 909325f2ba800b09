package model

import "time"

// Task statuses.
const (
	StatusActive   = "active"
	StatusComplete = "complete"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task represents a single to-do item.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index" json:"userId"`
	CategoryID  *uint      `gorm:"index" json:"categoryId"`
	Title       string     `json:"title"`
	Status      string     `gorm:"default:active" json:"status"`
	Priority    string     `gorm:"default:medium" json:"priority"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category"`
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusComplete
}
