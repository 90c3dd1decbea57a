package models

import (
	"time"
)

// Client 客户工作区模型,所有数据的租户隔离边界
type Client struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:120;not null" json:"slug"`
	Industry    string    `gorm:"size:100" json:"industry"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Client) TableName() string {
	return "clients"
}
