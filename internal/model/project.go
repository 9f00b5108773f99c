package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProjectStatusDraft     = "DRAFT"
	ProjectStatusPublished = "PUBLISHED"
	ProjectStatusArchived  = "ARCHIVED"
)

// ProjectContent 区块 ID -> 覆盖内容
type ProjectContent map[string]map[string]any

// Project 客户的一个落地页实例
type Project struct {
	ID         string                             `json:"id" gorm:"primaryKey;size:36"`
	Name       string                             `json:"name" gorm:"size:255;not null"`
	Slug       string                             `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	ClientID   string                             `json:"client_id" gorm:"size:36;index;not null"`
	TemplateID *string                            `json:"template_id" gorm:"size:36;index"`
	Content    datatypes.JSONType[ProjectContent] `json:"content" gorm:"not null"`
	Status     string                             `json:"status" gorm:"size:20;default:'DRAFT'"`
	CreatedAt  time.Time                          `json:"created_at"`
	UpdatedAt  time.Time                          `json:"updated_at"`
	Client     *Client                            `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Template   *Template                          `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	Variants   []Variant                          `json:"variants,omitempty" gorm:"foreignKey:ProjectID"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// IsPublished 是否对外可见
func (p *Project) IsPublished() bool {
	return p.Status == ProjectStatusPublished
}
