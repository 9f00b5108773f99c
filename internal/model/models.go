package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID 生成主键
func newID() string {
	return uuid.New().String()
}

// ensureID 在创建前补齐 UUID 主键
func ensureID(id *string) {
	if *id == "" {
		*id = newID()
	}
}

// AllModels 返回需要自动迁移的模型
func AllModels() []any {
	return []any{
		&Client{},
		&Template{},
		&Project{},
		&Variant{},
		&Product{},
	}
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
