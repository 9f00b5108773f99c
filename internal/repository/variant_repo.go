package repository

import (
	"context"

	"github.com/weibaohui/landingkit/internal/model"
	"gorm.io/gorm"
)

// VariantRepository 项目流量变体仓储
type VariantRepository interface {
	Create(ctx context.Context, variant *model.Variant) error
	ListByProject(ctx context.Context, projectID string) ([]model.Variant, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) Create(ctx context.Context, variant *model.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *variantRepository) ListByProject(ctx context.Context, projectID string) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at asc").
		Find(&variants).Error
	return variants, err
}
