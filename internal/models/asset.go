package models

import (
	"time"
)

// Asset 上传素材模型(产品图、Logo等)
type Asset struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ClientID    uint      `gorm:"not null;index" json:"client_id"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	ObjectKey   string    `gorm:"uniqueIndex;size:120;not null" json:"object_key"`
	URL         string    `gorm:"size:500" json:"url"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	Kind        string    `gorm:"size:20;default:'image'" json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联
	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName 指定表名
func (Asset) TableName() string {
	return "assets"
}
