package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/khangha1908/TodoX/internal/model"
)

// TemplateRepository handles CRUD for task templates.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *model.TaskTemplate) error {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) ListByUser(ctx context.Context, userID uint) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, userID, templateID uint) (*model.TaskTemplate, error) {
	var template model.TaskTemplate
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND id = ?", userID, templateID).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// UpdateFields applies a partial field update to one template.
func (r *TemplateRepository) UpdateFields(ctx context.Context, userID, templateID uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(&model.TaskTemplate{}).
		Where("user_id = ? AND id = ?", userID, templateID).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, userID, templateID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, templateID).
		Delete(&model.TaskTemplate{}).Error; err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
