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

// AssetHandler 素材处理器
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler 创建素材处理器
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// UploadAsset 上传素材文件
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "缺少上传文件")
		return
	}

	asset, err := h.assetService.Upload(clientID, fileHeader)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "上传成功", asset)
}

// ListAssets 获取素材列表
func (h *AssetHandler) ListAssets(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	assets, total, err := h.assetService.List(clientID, query.Offset(), query.PerPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, assets, total, query.Page, query.PerPage)
}

// GetAsset 获取素材详情
func (h *AssetHandler) GetAsset(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	asset, err := h.assetService.Get(id, clientID)
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, asset)
}

// DeleteAsset 删除素材及其存储文件
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.assetService.Delete(id, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "素材不存在")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
