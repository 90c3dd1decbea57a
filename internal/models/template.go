package models

import (
	"time"
)

// Template 创意模板模型
// ClientID为空表示共享模板库中的模板,对所有工作区可见。
type Template struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	ClientID       *uint     `gorm:"index" json:"client_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Slug           string    `gorm:"uniqueIndex;size:120;not null" json:"slug"`
	Category       string    `gorm:"size:100;index" json:"category"`
	PromptTemplate string    `gorm:"type:text" json:"prompt_template"`
	AspectRatio    string    `gorm:"size:10" json:"aspect_ratio"`
	PreviewURL     string    `gorm:"size:500" json:"preview_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Template) TableName() string {
	return "templates"
}

// IsShared 判断是否为共享模板
func (t *Template) IsShared() bool {
	return t.ClientID == nil
}
