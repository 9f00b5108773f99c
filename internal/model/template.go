package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TemplateTypeLandingPage = "LANDING_PAGE"
	TemplateTypeListicle    = "LISTICLE"
	TemplateTypePDP         = "PDP"
)

// FieldKind 默认内容字段的值类型
type FieldKind string

const (
	FieldString  FieldKind = "string"
	FieldBoolean FieldKind = "boolean"
	FieldNumber  FieldKind = "number"
	FieldList    FieldKind = "list"
	FieldObject  FieldKind = "object"
)

// FieldSpec 模板定义时推导出的字段声明
type FieldSpec struct {
	Key  string    `json:"key"`
	Kind FieldKind `json:"kind"`
}

// Section 模板中的一个区块
type Section struct {
	ID             string         `json:"id"`
	Component      string         `json:"component"`
	Order          int            `json:"order"`
	DefaultContent map[string]any `json:"defaultContent"`
	Fields         []FieldSpec    `json:"fields,omitempty"`
}

// Template 落地页模板
type Template struct {
	ID          string                        `json:"id" gorm:"primaryKey;size:36"`
	Name        string                        `json:"name" gorm:"size:255;not null"`
	Type        string                        `json:"type" gorm:"size:50;default:'LANDING_PAGE'"`
	Category    *string                       `json:"category" gorm:"size:100"`
	Description *string                       `json:"description" gorm:"type:text"`
	Thumbnail   *string                       `json:"thumbnail" gorm:"size:500"`
	Sections    datatypes.JSONType[[]Section] `json:"sections" gorm:"not null"`
	IsPublic    bool                          `json:"is_public" gorm:"not null"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`

	ProjectCount int64 `json:"project_count" gorm:"-"`
}

// TableName 指定表名
func (Template) TableName() string {
	return "templates"
}

// SectionList 返回区块列表（可能为空）
func (t *Template) SectionList() []Section {
	if t == nil {
		return nil
	}
	return t.Sections.Data()
}
