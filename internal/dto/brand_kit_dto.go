package dto

// CreateBrandKitRequest 创建品牌资料请求
type CreateBrandKitRequest struct {
	Name       string   `json:"name" binding:"required,max=255"`
	Colors     []string `json:"colors" binding:"omitempty,dive,hexcolor"`
	Fonts      []string `json:"fonts"`
	Tone       string   `json:"tone"`
	LogoURL    string   `json:"logo_url" binding:"omitempty,url"`
	Guidelines string   `json:"guidelines"`
	IsDefault  bool     `json:"is_default"`
}

// UpdateBrandKitRequest 更新品牌资料请求
type UpdateBrandKitRequest struct {
	Name       *string   `json:"name" binding:"omitempty,max=255"`
	Colors     *[]string `json:"colors" binding:"omitempty,dive,hexcolor"`
	Fonts      *[]string `json:"fonts"`
	Tone       *string   `json:"tone"`
	LogoURL    *string   `json:"logo_url" binding:"omitempty,url"`
	Guidelines *string   `json:"guidelines"`
	IsDefault  *bool     `json:"is_default"`
}
