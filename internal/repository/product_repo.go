package repository

import (
	"context"

	"github.com/weibaohui/landingkit/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 已同步商品仓储
type ProductRepository interface {
	// Upsert 按 (client_id, shopify_id) 插入或更新，返回后 product 为库中最新记录
	Upsert(ctx context.Context, product *model.Product) error
	ListByClient(ctx context.Context, clientID string) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	// LatestByClient 最近一次同步的商品
	LatestByClient(ctx context.Context, clientID string) (*model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Upsert(ctx context.Context, product *model.Product) error {
	db := r.db.WithContext(ctx)
	err := db.Omit("Client").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "shopify_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "price", "compare_price",
			"images", "variants", "synced_at", "updated_at",
		}),
	}).Create(product).Error
	if err != nil {
		return err
	}

	// 冲突更新时主键仍是新生成的 UUID，需要回读
	var stored model.Product
	if err := db.First(&stored, "client_id = ? AND shopify_id = ?", product.ClientID, product.ShopifyID).Error; err != nil {
		return notFound(err)
	}
	*product = stored
	return nil
}

func (r *productRepository) ListByClient(ctx context.Context, clientID string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("title asc").
		Find(&products).Error
	return products, err
}

func (r *productRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *productRepository) LatestByClient(ctx context.Context, clientID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("synced_at desc").
		First(&product).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}
