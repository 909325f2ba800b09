package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/khangha1908/TodoX/internal/model"
)

// TaskFilter is the predicate shared by the task list and its counts.
// UserID is always applied; the other fields are optional narrowing.
type TaskFilter struct {
	UserID       uint
	CreatedAfter *time.Time
	CategoryID   *uint
	NoCategory   bool
}

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// scope builds the owner-injected query for a filter. Every read and count
// goes through here so ownership is never forgotten in one spot.
func (r *TaskRepository) scope(ctx context.Context, f TaskFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", f.UserID)
	if f.CreatedAfter != nil {
		q = q.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.NoCategory {
		q = q.Where("category_id IS NULL")
	} else if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// List returns tasks matching the filter, newest first, categories populated.
func (r *TaskRepository) List(ctx context.Context, f TaskFilter) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.scope(ctx, f).Preload("Category").
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByStatus counts tasks matching the filter narrowed to one status.
func (r *TaskRepository) CountByStatus(ctx context.Context, f TaskFilter, status string) (int64, error) {
	var count int64
	if err := r.scope(ctx, f).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND id = ?", userID, taskID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateFields applies a partial field update to one task.
func (r *TaskRepository) UpdateFields(ctx context.Context, userID, taskID uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// DeleteMany removes every listed task the user owns and returns how many went.
func (r *TaskRepository) DeleteMany(ctx context.Context, userID uint, taskIDs []uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, taskIDs).
		Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("bulk delete tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// UpdateMany applies the same field updates to every listed task the user owns.
func (r *TaskRepository) UpdateMany(ctx context.Context, userID uint, taskIDs []uint, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id IN ?", userID, taskIDs).
		Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("bulk update tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// CountByCategory counts the user's tasks referencing a category. Backs the
// category-in-use guard on deletion.
func (r *TaskRepository) CountByCategory(ctx context.Context, userID, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tasks by category: %w", err)
	}
	return count, nil
}

// ListDueSoon returns active tasks due within the window [from, to), soonest first.
func (r *TaskRepository) ListDueSoon(ctx context.Context, userID uint, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND status = ? AND due_date >= ? AND due_date < ?",
			userID, model.StatusActive, from, to).
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
