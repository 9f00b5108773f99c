package model

import "time"

// Client 代理商管理的品牌客户
type Client struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	Name          string    `json:"name" gorm:"size:255;not null"`
	ShopifyDomain *string   `json:"shopify_domain" gorm:"size:255"`
	ShopifyToken  string    `json:"-" gorm:"type:text"` // 加密后的 access token
	BrandVoice    *string   `json:"brand_voice" gorm:"type:text"`
	LogoURL       *string   `json:"logo_url" gorm:"size:500"`
	PrimaryColor  string    `json:"primary_color" gorm:"size:20;default:'#000000'"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Projects      []Project `json:"projects,omitempty" gorm:"foreignKey:ClientID"`
	Products      []Product `json:"products,omitempty" gorm:"foreignKey:ClientID"`

	ProjectCount int64 `json:"project_count" gorm:"-"`
}

// TableName 指定表名
func (Client) TableName() string {
	return "clients"
}

// ShopifyConnected 是否已完成 Shopify 授权
func (c *Client) ShopifyConnected() bool {
	return c.ShopifyDomain != nil && *c.ShopifyDomain != "" && c.ShopifyToken != ""
}

// Domain 返回店铺域名，未设置时为空串
func (c *Client) Domain() string {
	if c.ShopifyDomain == nil {
		return ""
	}
	return *c.ShopifyDomain
}
