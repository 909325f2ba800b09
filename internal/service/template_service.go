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

// TemplateInput represents data required to create a task template.
type TemplateInput struct {
	Name        string
	Title       string
	CategoryID  *uint
	DueDate     *time.Time
	Priority    string
	Description string
}

// TemplatePatch is a partial template update, mirroring TaskPatch.
type TemplatePatch struct {
	Name        string
	SetName     bool
	Title       string
	SetTitle    bool
	Priority    string
	SetPriority bool
	Description string
	SetDesc     bool
	CategoryID  *uint
	SetCategory bool
	DueDate     *time.Time
	SetDueDate  bool
}

// TemplateService mirrors the task store's shape for reusable blueprints.
// Templates have no status, so there are no completion side effects.
type TemplateService struct {
	templateRepo *repository.TemplateRepository
	categoryRepo *repository.CategoryRepository
}

func NewTemplateService(templateRepo *repository.TemplateRepository, categoryRepo *repository.CategoryRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo, categoryRepo: categoryRepo}
}

func (s *TemplateService) List(ctx context.Context, userID uint) ([]model.TaskTemplate, error) {
	return s.templateRepo.ListByUser(ctx, userID)
}

func (s *TemplateService) Create(ctx context.Context, userID uint, input TemplateInput) (*model.TaskTemplate, error) {
	name := strings.TrimSpace(input.Name)
	title := strings.TrimSpace(input.Title)
	if name == "" || title == "" {
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

	template := model.TaskTemplate{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Name:        name,
		Title:       title,
		Priority:    priority,
		Description: strings.TrimSpace(input.Description),
		DueDate:     input.DueDate,
	}
	if err := s.templateRepo.Create(ctx, &template); err != nil {
		return nil, err
	}
	return s.templateRepo.FindByID(ctx, userID, template.ID)
}

func (s *TemplateService) Update(ctx context.Context, userID, templateID uint, patch TemplatePatch) (*model.TaskTemplate, error) {
	if _, err := s.templateRepo.FindByID(ctx, userID, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}

	fields := map[string]interface{}{}
	if patch.SetName {
		fields["name"] = strings.TrimSpace(patch.Name)
	}
	if patch.SetTitle {
		fields["title"] = strings.TrimSpace(patch.Title)
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

	if len(fields) > 0 {
		if err := s.templateRepo.UpdateFields(ctx, userID, templateID, fields); err != nil {
			return nil, err
		}
	}
	return s.templateRepo.FindByID(ctx, userID, templateID)
}

func (s *TemplateService) Delete(ctx context.Context, userID, templateID uint) (*model.TaskTemplate, error) {
	template, err := s.templateRepo.FindByID(ctx, userID, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}
	if err := s.templateRepo.Delete(ctx, userID, templateID); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) checkCategory(ctx context.Context, userID uint, categoryID *uint) error {
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
