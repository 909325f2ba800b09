package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/khangha1908/TodoX/internal/model"
	"github.com/khangha1908/TodoX/internal/repository"
)

// CategoryInput represents data for creating or replacing a category.
type CategoryInput struct {
	Name        string
	Color       string
	Description string
}

// CategoryService wraps category business rules: per-owner name uniqueness
// and the in-use guard on deletion.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	taskRepo     *repository.TaskRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, taskRepo *repository.TaskRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, taskRepo: taskRepo}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

// Create persists a new category. Name collisions are caught by the unique
// index itself, so a concurrent duplicate cannot slip past a pre-check.
func (s *CategoryService) Create(ctx context.Context, userID uint, input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingFields
	}

	category := model.Category{
		UserID:      userID,
		Name:        name,
		Color:       input.Color,
		Description: strings.TrimSpace(input.Description),
	}
	if category.Color == "" {
		category.Color = model.DefaultCategoryColor
	}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID uint, input CategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, userID, categoryID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrCategoryNotFound
	case err != nil:
		return nil, fmt.Errorf("find category: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingFields
	}

	category.Name = name
	category.Color = input.Color
	if category.Color == "" {
		category.Color = model.DefaultCategoryColor
	}
	category.Description = strings.TrimSpace(input.Description)

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category unless any of the owner's tasks still reference
// it. The check and the delete are two store calls, so a concurrent task
// creation can slip between them; we accept that race.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, userID, categoryID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrCategoryNotFound
	case err != nil:
		return nil, fmt.Errorf("find category: %w", err)
	}

	inUse, err := s.taskRepo.CountByCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if inUse > 0 {
		return nil, ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	return category, nil
}
