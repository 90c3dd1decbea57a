package dto

import "time"

// MaxCampaignItems 单次提交的任务数上限
const MaxCampaignItems = 20

// CampaignItemRequest 单个创意生成任务描述
type CampaignItemRequest struct {
	Prompt          string `json:"prompt" binding:"required"`
	Headline        string `json:"headline"`
	BodyCopy        string `json:"body_copy"`
	CTA             string `json:"cta"`
	Concept         string `json:"concept"`
	Persona         string `json:"persona"`
	Angle           string `json:"angle"`
	Rationale       string `json:"rationale"`
	ImageSize       string `json:"image_size" binding:"omitempty,aspect"`
	NumVariants     int    `json:"num_variants" binding:"omitempty,min=1,max=4"`
	ProductImageURL string `json:"product_image_url"`
	BrandKitID      *uint  `json:"brand_kit_id"`
	TemplateID      *uint  `json:"template_id"`
}

// SubmitCampaignRequest 提交批次请求
type SubmitCampaignRequest struct {
	Goal  string                `json:"goal"`
	Items []CampaignItemRequest `json:"items" binding:"required,min=1,max=20,dive"`
}

// CampaignItemCreated 批次内单项的创建回执
type CampaignItemCreated struct {
	Position     int    `json:"position"`
	GenerationID uint   `json:"generation_id"`
	Status       string `json:"status"`
}

// SubmitCampaignResponse 提交批次响应
type SubmitCampaignResponse struct {
	BatchID    uint                  `json:"batch_id"`
	Status     string                `json:"status"`
	TotalItems int                   `json:"total_items"`
	Items      []CampaignItemCreated `json:"items"`
}

// BatchItemView 批次内单项的轮询视图
type BatchItemView struct {
	Position     int       `json:"position"`
	GenerationID uint      `json:"generation_id"`
	Persona      string    `json:"persona,omitempty"`
	Angle        string    `json:"angle,omitempty"`
	Status       string    `json:"status"`
	Prompt       string    `json:"prompt"`
	Headline     string    `json:"headline,omitempty"`
	Concept      string    `json:"concept,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// BatchDetailResponse 批次详情响应
type BatchDetailResponse struct {
	ID         uint            `json:"id"`
	Goal       string          `json:"goal,omitempty"`
	Status     string          `json:"status"`
	TotalItems int             `json:"total_items"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []BatchItemView `json:"items"`
}

// PlanCampaignRequest 策略规划请求
type PlanCampaignRequest struct {
	Goal       string   `json:"goal" binding:"required"`
	BrandKitID *uint    `json:"brand_kit_id"`
	Personas   []string `json:"personas" binding:"required,min=1,max=5"`
	Angles     []string `json:"angles" binding:"required,min=1,max=4"`
	ImageSize  string   `json:"image_size" binding:"omitempty,aspect"`
}

// PlannedItem 策略模型产出的单个计划项
type PlannedItem struct {
	Persona   string `json:"persona"`
	Angle     string `json:"angle"`
	Prompt    string `json:"prompt"`
	Headline  string `json:"headline"`
	CTA       string `json:"cta"`
	Concept   string `json:"concept"`
	Rationale string `json:"rationale"`
}

// PlanCampaignResponse 策略规划响应
type PlanCampaignResponse struct {
	Goal  string        `json:"goal"`
	Model string        `json:"model"`
	Items []PlannedItem `json:"items"`
}
