package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TrafficSourceDefault = "DEFAULT"
	TrafficSourceMeta    = "META"
	TrafficSourceGoogle  = "GOOGLE"
	TrafficSourceEmail   = "EMAIL"
	TrafficSourceTikTok  = "TIKTOK"
)

// Variant 按流量来源区分的项目变体
type Variant struct {
	ID            string                             `json:"id" gorm:"primaryKey;size:36"`
	ProjectID     string                             `json:"project_id" gorm:"size:36;index;not null"`
	TrafficSource string                             `json:"traffic_source" gorm:"size:20;not null;default:'DEFAULT'"`
	Content       datatypes.JSONType[ProjectContent] `json:"content" gorm:"not null"`
	IsActive      bool                               `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time                          `json:"created_at"`
	UpdatedAt     time.Time                          `json:"updated_at"`
}

// TableName 指定表名
func (Variant) TableName() string {
	return "variants"
}
