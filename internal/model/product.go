package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProductImage 商品图片
type ProductImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ProductVariant 商品规格
type ProductVariant struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        string  `json:"price"`
	ComparePrice *string `json:"comparePrice"`
	SKU          *string `json:"sku"`
	Inventory    int     `json:"inventory"`
}

// Product 从 Shopify 同步的商品，(client_id, shopify_id) 唯一
type Product struct {
	ID           string                               `json:"id" gorm:"primaryKey;size:36"`
	ClientID     string                               `json:"client_id" gorm:"size:36;not null;uniqueIndex:idx_products_client_shopify"`
	ShopifyID    string                               `json:"shopify_id" gorm:"size:64;not null;uniqueIndex:idx_products_client_shopify"`
	Title        string                               `json:"title" gorm:"size:255;not null"`
	Description  *string                              `json:"description" gorm:"type:text"`
	Price        float64                              `json:"price"`
	ComparePrice *float64                             `json:"compare_price"`
	Images       datatypes.JSONType[[]ProductImage]   `json:"images" gorm:"not null"`
	Variants     datatypes.JSONType[[]ProductVariant] `json:"variants" gorm:"not null"`
	SyncedAt     time.Time                            `json:"synced_at" gorm:"index"`
	CreatedAt    time.Time                            `json:"created_at"`
	UpdatedAt    time.Time                            `json:"updated_at"`
	Client       *Client                              `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// FirstVariantID 第一个规格的 ID，没有规格时返回空串
func (p *Product) FirstVariantID() string {
	variants := p.Variants.Data()
	if len(variants) == 0 {
		return ""
	}
	return variants[0].ID
}
