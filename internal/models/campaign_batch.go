package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 批次聚合状态枚举
const (
	BatchStatusRunning = "running" // 仍有子任务在执行
	BatchStatusDone    = "done"    // 全部完成(允许部分失败)
	BatchStatusFailed  = "failed"  // 全部失败
)

// CampaignBatch 营销活动批次模型
// 聚合状态由子生成记录派生,不允许客户端直接设置。
type CampaignBatch struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	ClientID   uint    `gorm:"not null;index" json:"client_id"`
	Goal       string  `gorm:"type:text" json:"goal"`
	TotalItems int     `gorm:"not null" json:"total_items"`
	Status     string  `gorm:"size:20;index;default:'running'" json:"status"` // running, done, failed
	Metadata   JSONMap `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName 指定表名
func (CampaignBatch) TableName() string {
	return "campaign_batches"
}

// DeriveBatchStatus 根据子生成记录数量派生批次状态
// 规则:存在in-flight子记录 → running;全部失败 → failed;否则 → done。
// 纯函数,多个worker并发重算时结果可交换,无需加锁。
func DeriveBatchStatus(inFlight, failed, total int64) string {
	if inFlight > 0 {
		return BatchStatusRunning
	}
	if total > 0 && failed == total {
		return BatchStatusFailed
	}
	return BatchStatusDone
}

// JSONMap 自定义JSON类型
type JSONMap map[string]interface{}

// Scan 实现sql.Scanner接口
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Value 实现driver.Valuer接口
func (j JSONMap) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}
