package handler

import (
	"errors"
	"strconv"

	"adgen-go/internal/dto"
	"adgen-go/internal/middleware"
	"adgen-go/internal/service"
	"adgen-go/internal/utils"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"
)

// GenerationHandler 生成记录处理器
type GenerationHandler struct {
	generationService *service.GenerationService
}

// NewGenerationHandler 创建生成记录处理器
func NewGenerationHandler(generationService *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// CreateGeneration 提交单次生成
func (h *GenerationHandler) CreateGeneration(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var req dto.CreateGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	gen, err := h.generationService.Create(clientID, &req)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "生成任务已提交", gen)
}

// ListGenerations 获取生成历史
func (h *GenerationHandler) ListGenerations(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var query dto.GenerationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	gens, total, err := h.generationService.List(clientID, &query)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, gens, total, query.Page, query.PerPage)
}

// GetGeneration 获取生成记录
func (h *GenerationHandler) GetGeneration(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	gen, err := h.generationService.Get(id, clientID)
	if err != nil {
		if errors.Is(err, service.ErrGenerationNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gen)
}

// UpdateGeneration 部分更新生成记录
func (h *GenerationHandler) UpdateGeneration(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var req dto.UpdateGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	gen, err := h.generationService.Update(id, clientID, &req)
	if err != nil {
		if errors.Is(err, service.ErrGenerationNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "生成记录不存在")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gen)
}

// SelectImage 选定主图
func (h *GenerationHandler) SelectImage(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var req dto.SelectImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	gen, err := h.generationService.SelectImage(id, clientID, req.ImageURL)
	if err != nil {
		if errors.Is(err, service.ErrGenerationNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gen)
}

// DeleteGeneration 删除生成记录
func (h *GenerationHandler) DeleteGeneration(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.generationService.Delete(id, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "生成记录不存在")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

// parseIDParam 解析路径中的ID参数
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("无效的ID")
	}
	return uint(id), nil
}
