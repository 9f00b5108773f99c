package repository

import (
	"context"

	"github.com/weibaohui/landingkit/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository 落地页模板 Repository 接口
type TemplateRepository interface {
	// List 按创建时间倒序列出模板，publicOnly 时只返回公开模板
	List(ctx context.Context, publicOnly bool) ([]model.Template, error)
	Get(ctx context.Context, id string) (*model.Template, error)
	Create(ctx context.Context, template *model.Template) error
	Save(ctx context.Context, template *model.Template) error
	// Delete 删除模板，引用它的项目 template_id 置空
	Delete(ctx context.Context, id string) error
	// ReplaceAll 清空模板后批量创建
	ReplaceAll(ctx context.Context, templates []model.Template) error
}

// templateRepository 实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建 Repository 实例
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// List 获取模板列表并统计使用该模板的项目数
func (r *templateRepository) List(ctx context.Context, publicOnly bool) ([]model.Template, error) {
	db := r.db.WithContext(ctx)
	query := db.Order("created_at desc")
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}

	var templates []model.Template
	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	counts, err := countProjectsBy(db, "template_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		templates[i].ProjectCount = counts[templates[i].ID]
	}
	return templates, nil
}

// Get 根据ID获取模板
func (r *templateRepository) Get(ctx context.Context, id string) (*model.Template, error) {
	var template model.Template
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &template, nil
}

// Create 创建模板
func (r *templateRepository) Create(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// Save 更新模板
func (r *templateRepository) Save(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// Delete 删除模板
func (r *templateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).Where("template_id = ?", id).Update("template_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Template{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ReplaceAll 种子数据使用，已有项目的 template_id 同步置空
func (r *templateRepository) ReplaceAll(ctx context.Context, templates []model.Template) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).Where("template_id IS NOT NULL").Update("template_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Template{}).Error; err != nil {
			return err
		}
		if len(templates) == 0 {
			return nil
		}
		return tx.Create(&templates).Error
	})
}
