package dto

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Category       string `json:"category" binding:"max=100"`
	PromptTemplate string `json:"prompt_template" binding:"required"`
	AspectRatio    string `json:"aspect_ratio" binding:"omitempty,aspect"`
	PreviewURL     string `json:"preview_url" binding:"omitempty,url"`
	Shared         bool   `json:"shared"` // true时进入共享模板库
}

// UpdateTemplateRequest 更新模板请求
type UpdateTemplateRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	Category       *string `json:"category" binding:"omitempty,max=100"`
	PromptTemplate *string `json:"prompt_template"`
	AspectRatio    *string `json:"aspect_ratio" binding:"omitempty,aspect"`
	PreviewURL     *string `json:"preview_url" binding:"omitempty,url"`
}

// TemplateListQuery 模板列表查询参数
type TemplateListQuery struct {
	Category string `form:"category"`
}
