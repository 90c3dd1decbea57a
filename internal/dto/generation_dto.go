package dto

import "adgen-go/internal/models"

// CreateGenerationRequest 单次生成请求(不属于任何批次)
type CreateGenerationRequest struct {
	Prompt          string   `json:"prompt" binding:"required"`
	Headline        string   `json:"headline"`
	BodyCopy        string   `json:"body_copy"`
	CTA             string   `json:"cta"`
	Concept         string   `json:"concept"`
	Persona         string   `json:"persona"`
	ImageSize       string   `json:"image_size" binding:"omitempty,aspect"`
	NumVariants     int      `json:"num_variants" binding:"omitempty,min=1,max=4"`
	ProductImageURL string   `json:"product_image_url"`
	AssetRefs       []string `json:"asset_refs"`
	BrandKitID      *uint    `json:"brand_kit_id"`
	TemplateID      *uint    `json:"template_id"`
}

// UpdateGenerationRequest 部分更新生成记录请求
// 指针字段为nil表示不更新该字段。
type UpdateGenerationRequest struct {
	Headline         *string           `json:"headline"`
	BodyCopy         *string           `json:"body_copy"`
	CTA              *string           `json:"cta"`
	Concept          *string           `json:"concept"`
	SelectedImageURL *string           `json:"selected_image_url"`
	GeneratedImages  *models.ImageList `json:"generated_images"`
}

// SelectImageRequest 选定主图请求
type SelectImageRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

// GenerationListQuery 生成历史查询参数
type GenerationListQuery struct {
	PaginationQuery
	Status  string `form:"status" binding:"omitempty,oneof=pending processing done failed"`
	BatchID *uint  `form:"batch_id"`
}
