package dto

// CreateClientRequest 创建工作区请求
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Industry    string `json:"industry" binding:"max=100"`
	Description string `json:"description"`
}

// UpdateClientRequest 更新工作区请求
type UpdateClientRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Industry    *string `json:"industry" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// SwitchClientResponse 工作区切换响应
type SwitchClientResponse struct {
	ClientID   uint   `json:"client_id"`
	ClientSlug string `json:"client_slug"`
}
