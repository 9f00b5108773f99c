package repository

import (
	"context"

	"github.com/weibaohui/landingkit/internal/model"
	"gorm.io/gorm"
)

// ClientRepository 客户仓储接口
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	// List 按创建时间倒序，附带项目数量
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id string) (*model.Client, error)
	Save(ctx context.Context, client *model.Client) error
	// Delete 同时删除客户的商品、项目及项目变体
	Delete(ctx context.Context, id string) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) List(ctx context.Context) ([]model.Client, error) {
	db := r.db.WithContext(ctx)
	var clients []model.Client
	if err := db.Order("created_at desc").Find(&clients).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	counts, err := countProjectsBy(db, "client_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].ProjectCount = counts[clients[i].ID]
	}
	return clients, nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (r *clientRepository) Save(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectIDs := tx.Model(&model.Project{}).Select("id").Where("client_id = ?", id)
		if err := tx.Where("project_id IN (?)", projectIDs).Delete(&model.Variant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&model.Product{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Client{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
