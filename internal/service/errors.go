package service

import "errors"

// Sentinel errors exposed to the transport layer. The HTTP handlers map
// these onto status codes; the error text doubles as the response message.
var (
	ErrDuplicateUser      = errors.New("a user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")

	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category is in use by existing tasks")
	ErrBadCategory       = errors.New("category does not exist")

	ErrTaskNotFound     = errors.New("task not found")
	ErrTemplateNotFound = errors.New("template not found")

	ErrMissingFields = errors.New("required fields are missing")
	ErrEmptyIDList   = errors.New("taskIds list is invalid")
	ErrBadStatus     = errors.New("status must be active or complete")
	ErrBadPriority   = errors.New("priority must be low, medium or high")
)
