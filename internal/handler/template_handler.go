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

// TemplateHandler 模板处理器
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler 创建模板处理器
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// CreateTemplate 创建工作区私有模板
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	tpl, err := h.templateService.Create(clientID, &req)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "模板创建成功", tpl)
}

// ListTemplates 获取可用模板列表(共享模板 + 工作区私有模板)
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var query dto.TemplateListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	templates, err := h.templateService.List(clientID, query.Category)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, templates)
}

// GetTemplate 获取模板详情
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	tpl, err := h.templateService.Get(id, clientID)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, tpl)
}

// UpdateTemplate 更新工作区私有模板
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	tpl, err := h.templateService.Update(id, clientID, &req)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, tpl)
}

// DeleteTemplate 删除工作区私有模板
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.templateService.Delete(id, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "模板不存在")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
