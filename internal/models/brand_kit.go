package models

import (
	"time"
)

// BrandKit 品牌资料模型,归属单个工作区
type BrandKit struct {
	ID          uint     `gorm:"primarykey" json:"id"`
	ClientID    uint     `gorm:"not null;index" json:"client_id"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Colors      JSONList `gorm:"type:text" json:"colors"` // 十六进制色值列表
	Fonts       JSONList `gorm:"type:text" json:"fonts"`
	Tone        string   `gorm:"type:text" json:"tone"` // 品牌语气描述
	LogoURL     string   `gorm:"size:500" json:"logo_url"`
	Guidelines  string   `gorm:"type:text" json:"guidelines"`
	IsDefault   bool     `gorm:"default:false" json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联
	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName 指定表名
func (BrandKit) TableName() string {
	return "brand_kits"
}
