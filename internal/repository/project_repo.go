package repository

import (
	"context"

	"github.com/weibaohui/landingkit/internal/model"
	"gorm.io/gorm"
)

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	// List clientID 为空时返回全部项目，按创建时间倒序
	List(ctx context.Context, clientID string) ([]model.Project, error)
	// Get 预加载客户与模板
	Get(ctx context.Context, id string) (*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	Save(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("Client", "Template", "Variants").Create(project).Error
}

func (r *projectRepository) List(ctx context.Context, clientID string) ([]model.Project, error) {
	query := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Template").
		Order("created_at desc")
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	var projects []model.Project
	err := query.Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Get(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Template").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Template").
		First(&project, "slug = ?", slug).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// Save 只写项目本身，不级联关联对象
func (r *projectRepository) Save(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("Client", "Template", "Variants").Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Variant{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
