package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 生成记录状态枚举
const (
	GenerationStatusPending    = "pending"    // 等待执行
	GenerationStatusProcessing = "processing" // 生成中
	GenerationStatusDone       = "done"       // 生成完成
	GenerationStatusFailed     = "failed"     // 生成失败
)

// 图片条目状态枚举
const (
	ImageStatusReady    = "ready"    // 可用
	ImageStatusArchived = "archived" // 已归档
)

// Generation 创意生成记录模型
type Generation struct {
	ID       uint  `gorm:"primarykey" json:"id"`
	ClientID uint  `gorm:"not null;index" json:"client_id"`
	BatchID  *uint `gorm:"index" json:"batch_id"`

	// 弱引用,引用对象删除后置空
	BrandKitID *uint `json:"brand_kit_id"`
	TemplateID *uint `json:"template_id"`

	// 输入
	Prompt          string   `gorm:"type:text;not null" json:"prompt"`
	Headline        string   `gorm:"size:255" json:"headline"`
	BodyCopy        string   `gorm:"type:text" json:"body_copy"`
	CTA             string   `gorm:"size:100" json:"cta"`
	Concept         string   `gorm:"type:text" json:"concept"`
	Persona         string   `gorm:"size:255" json:"persona"`
	ProductImageURL string   `gorm:"size:500" json:"product_image_url"`
	AssetRefs       JSONList `gorm:"type:text" json:"asset_refs"`

	// 状态与结果
	Status           string    `gorm:"size:20;index;default:'pending'" json:"status"` // pending, processing, done, failed
	GeneratedImages  ImageList `gorm:"type:text" json:"generated_images"`
	SelectedImageURL string    `gorm:"size:500" json:"selected_image_url"`
	ErrorMessage     string    `gorm:"type:text" json:"error_message"`
	Metadata         JSONMap   `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName 指定表名
func (Generation) TableName() string {
	return "generations"
}

// IsTerminal 判断是否为终态
func (g *Generation) IsTerminal() bool {
	return g.Status == GenerationStatusDone || g.Status == GenerationStatusFailed
}

// IsInFlight 判断是否在执行中(pending或processing)
func (g *Generation) IsInFlight() bool {
	return g.Status == GenerationStatusPending || g.Status == GenerationStatusProcessing
}

// GeneratedImage 生成结果中的单张图片条目
type GeneratedImage struct {
	URL         string   `json:"url"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
	IsSelected  bool     `json:"is_selected"`
	Score       *float64 `json:"score,omitempty"`
	Status      string   `json:"status,omitempty"` // ready, archived
}

// ImageList 图片条目列表,以JSON文本存储
type ImageList []GeneratedImage

// Scan 实现sql.Scanner接口
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
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

	return json.Unmarshal(bytes, l)
}

// Value 实现driver.Valuer接口
func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// NormalizeGeneratedImages 规范化生成图片列表
// 规则:
//  1. 丢弃没有URL的条目
//  2. content_type缺失时默认image/jpeg,status缺失时默认ready
//  3. is_selected仅在URL等于selectedURL时为true
//
// 该函数是幂等的:对已规范化的列表以相同selectedURL再次调用,结果不变。
func NormalizeGeneratedImages(images ImageList, selectedURL string) ImageList {
	normalized := make(ImageList, 0, len(images))
	for _, img := range images {
		if img.URL == "" {
			continue
		}
		if img.ContentType == "" {
			img.ContentType = "image/jpeg"
		}
		if img.Status == "" {
			img.Status = ImageStatusReady
		}
		img.IsSelected = selectedURL != "" && img.URL == selectedURL
		normalized = append(normalized, img)
	}
	return normalized
}

// JSONList 字符串列表,以JSON文本存储
type JSONList []string

// Scan 实现sql.Scanner接口
func (l *JSONList) Scan(value interface{}) error {
	if value == nil {
		*l = JSONList{}
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

	return json.Unmarshal(bytes, l)
}

// Value 实现driver.Valuer接口
func (l JSONList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}
