package client

import "time"

// User is the public profile returned by the auth endpoints.
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is the body of a successful register or login call.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

type Task struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt"`
	Category    *Category  `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskList is the filtered listing with counts over the same predicate.
type TaskList struct {
	Tasks         []Task `json:"tasks"`
	ActiveCount   int64  `json:"activeCount"`
	CompleteCount int64  `json:"completeCount"`
}

type TaskInput struct {
	Title       string     `json:"title"`
	Category    *uint      `json:"category,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Description string     `json:"description,omitempty"`
}

type Template struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Priority    string     `json:"priority"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Category    *Category  `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TemplateInput struct {
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Category    *uint      `json:"category,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Description string     `json:"description,omitempty"`
}

// NewTaskFromTemplate copies a template's fields into a task-create request.
// This is the whole of template instantiation: a client-side copy, nothing
// transactional on the server.
func NewTaskFromTemplate(t Template) TaskInput {
	input := TaskInput{
		Title:       t.Title,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Description: t.Description,
	}
	if t.Category != nil {
		id := t.Category.ID
		input.Category = &id
	}
	return input
}
