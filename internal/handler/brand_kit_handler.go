package handler

import (
	"errors"

	"adgen-go/internal/dto"
	"adgen-go/internal/middleware"
	"adgen-go/internal/service"
	"adgen-go/internal/utils"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"
)

// BrandKitHandler 品牌资料处理器
type BrandKitHandler struct {
	brandKitService *service.BrandKitService
}

// NewBrandKitHandler 创建品牌资料处理器
func NewBrandKitHandler(brandKitService *service.BrandKitService) *BrandKitHandler {
	return &BrandKitHandler{brandKitService: brandKitService}
}

// CreateBrandKit 创建品牌资料
func (h *BrandKitHandler) CreateBrandKit(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var req dto.CreateBrandKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	kit, err := h.brandKitService.Create(clientID, &req)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "品牌资料创建成功", kit)
}

// ListBrandKits 获取品牌资料列表
func (h *BrandKitHandler) ListBrandKits(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	kits, err := h.brandKitService.List(clientID)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, kits)
}

// GetBrandKit 获取品牌资料
func (h *BrandKitHandler) GetBrandKit(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	kit, err := h.brandKitService.Get(id, clientID)
	if err != nil {
		if errors.Is(err, service.ErrBrandKitNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, kit)
}

// UpdateBrandKit 更新品牌资料
func (h *BrandKitHandler) UpdateBrandKit(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var req dto.UpdateBrandKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	kit, err := h.brandKitService.Update(id, clientID, &req)
	if err != nil {
		if errors.Is(err, service.ErrBrandKitNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, kit)
}

// DeleteBrandKit 删除品牌资料
func (h *BrandKitHandler) DeleteBrandKit(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.brandKitService.Delete(id, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "品牌资料不存在")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
