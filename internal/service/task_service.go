package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/khangha1908/TodoX/internal/model"
	"github.com/khangha1908/TodoX/internal/repository"
)

// Date-bucket filters accepted by List.
const (
	FilterAll   = "all"
	FilterToday = "today"
	FilterWeek  = "week"
	FilterMonth = "month"
)

// ListInput narrows a task listing. NoCategory selects tasks without a
// category; CategoryID selects one category; both unset means no restriction.
type ListInput struct {
	Filter     string
	CategoryID *uint
	NoCategory bool
}

// ListResult carries the matching tasks plus status counts computed over the
// same predicate, so the counts always describe the filtered set.
type ListResult struct {
	Tasks         []model.Task `json:"tasks"`
	ActiveCount   int64        `json:"activeCount"`
	CompleteCount int64        `json:"completeCount"`
}

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	CategoryID  *uint
	DueDate     *time.Time
	Priority    string
	Description string
}

// TaskPatch is a partial update: a field changes only when its Set flag is
// true. A true flag with a nil pointer clears the field.
type TaskPatch struct {
	Title       string
	SetTitle    bool
	Status      string
	SetStatus   bool
	Priority    string
	SetPriority bool
	Description string
	SetDesc     bool
	CategoryID  *uint
	SetCategory bool
	DueDate     *time.Time
	SetDueDate  bool
	CompletedAt *time.Time
	SetDone     bool
}

// TaskService wraps task business logic: date buckets, category validation
// and bulk operations.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// BucketStart returns the creation-time lower bound for a date bucket, or nil
// when the bucket imposes none. Unknown filters fall back to no bound.
func BucketStart(filter string, now time.Time) *time.Time {
	var start time.Time
	switch filter {
	case FilterToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case FilterWeek:
		// Weeks start on Monday. On Sunday go back six days, not one.
		back := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			back += 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day()-back, 0, 0, 0, 0, now.Location())
	case FilterMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &start
}

// List returns the user's tasks matching the filter, newest first, along with
// active/complete counts over the same predicate.
func (s *TaskService) List(ctx context.Context, userID uint, input ListInput, now time.Time) (*ListResult, error) {
	filter := repository.TaskFilter{
		UserID:       userID,
		CreatedAfter: BucketStart(input.Filter, now),
		CategoryID:   input.CategoryID,
		NoCategory:   input.NoCategory,
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	activeCount, err := s.taskRepo.CountByStatus(ctx, filter, model.StatusActive)
	if err != nil {
		return nil, err
	}
	completeCount, err := s.taskRepo.CountByStatus(ctx, filter, model.StatusComplete)
	if err != nil {
		return nil, err
	}

	return &ListResult{Tasks: tasks, ActiveCount: activeCount, CompleteCount: completeCount}, nil
}

func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrMissingFields
	}

	if err := s.checkCategory(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, ErrBadPriority
	}

	task := model.Task{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       title,
		Status:      model.StatusActive,
		Priority:    priority,
		Description: strings.TrimSpace(input.Description),
		DueDate:     input.DueDate,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, userID, task.ID)
}

// Update applies a partial update and returns the task with its category
// populated. Only fields flagged in the patch change.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, patch TaskPatch) (*model.Task, error) {
	if _, err := s.taskRepo.FindByID(ctx, userID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	fields, err := s.patchFields(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.taskRepo.UpdateFields(ctx, userID, taskID, fields); err != nil {
			return nil, err
		}
	}
	return s.taskRepo.FindByID(ctx, userID, taskID)
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return task, nil
}

// BulkDelete removes every listed task the user owns. IDs owned by someone
// else are silently skipped; the returned count covers only actual deletions.
func (s *TaskService) BulkDelete(ctx context.Context, userID uint, taskIDs []uint) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, ErrEmptyIDList
	}
	return s.taskRepo.DeleteMany(ctx, userID, taskIDs)
}

// BulkPatch holds the shared field updates of a bulk update.
type BulkPatch struct {
	Status      string
	SetStatus   bool
	CompletedAt *time.Time
	SetDone     bool
}

// BulkUpdate applies the same status/completedAt change to every listed task
// the user owns and returns the number of rows touched.
func (s *TaskService) BulkUpdate(ctx context.Context, userID uint, taskIDs []uint, patch BulkPatch) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, ErrEmptyIDList
	}

	fields := map[string]interface{}{}
	if patch.SetStatus {
		if !model.ValidStatus(patch.Status) {
			return 0, ErrBadStatus
		}
		fields["status"] = patch.Status
	}
	if patch.SetDone {
		fields["completed_at"] = patch.CompletedAt
	}
	if len(fields) == 0 {
		return 0, nil
	}
	return s.taskRepo.UpdateMany(ctx, userID, taskIDs, fields)
}

// checkCategory verifies that a referenced category exists and belongs to the
// caller. A nil id (no category) always passes.
func (s *TaskService) checkCategory(ctx context.Context, userID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.FindByID(ctx, userID, *categoryID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrBadCategory
	case err != nil:
		return fmt.Errorf("find category: %w", err)
	}
	return nil
}

func (s *TaskService) patchFields(ctx context.Context, userID uint, patch TaskPatch) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if patch.SetTitle {
		fields["title"] = strings.TrimSpace(patch.Title)
	}
	if patch.SetStatus {
		if !model.ValidStatus(patch.Status) {
			return nil, ErrBadStatus
		}
		fields["status"] = patch.Status
	}
	if patch.SetPriority {
		priority := patch.Priority
		if priority == "" {
			priority = model.PriorityMedium
		}
		if !model.ValidPriority(priority) {
			return nil, ErrBadPriority
		}
		fields["priority"] = priority
	}
	if patch.SetDesc {
		fields["description"] = strings.TrimSpace(patch.Description)
	}
	if patch.SetCategory {
		if err := s.checkCategory(ctx, userID, patch.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = patch.CategoryID
	}
	if patch.SetDueDate {
		fields["due_date"] = patch.DueDate
	}
	if patch.SetDone {
		fields["completed_at"] = patch.CompletedAt
	}
	return fields, nil
}
