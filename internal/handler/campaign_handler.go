package handler

import (
	"errors"
	"strconv"

	"adgen-go/internal/dto"
	"adgen-go/internal/middleware"
	"adgen-go/internal/service"
	"adgen-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// CampaignHandler 营销活动批次处理器
type CampaignHandler struct {
	campaignService *service.CampaignService
	strategyService *service.StrategyService
}

// NewCampaignHandler 创建批次处理器
func NewCampaignHandler(campaignService *service.CampaignService, strategyService *service.StrategyService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		strategyService: strategyService,
	}
}

// SubmitCampaign 提交批次
// 验证通过后立即返回批次ID和各项生成记录ID,执行在后台进行。
func (h *CampaignHandler) SubmitCampaign(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var req dto.SubmitCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	resp, err := h.campaignService.SubmitBatch(clientID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBatch) || errors.Is(err, service.ErrTooManyItems) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "批次已提交", resp)
}

// GetBatch 获取批次详情
// 客户端轮询该接口直到status离开running。
func (h *CampaignHandler) GetBatch(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.BadRequest(c, "无效的批次ID")
		return
	}

	resp, err := h.campaignService.GetBatch(uint(id), clientID)
	if err != nil {
		if errors.Is(err, service.ErrBatchNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, resp)
}

// ListBatches 获取批次列表
func (h *CampaignHandler) ListBatches(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	batches, total, err := h.campaignService.ListBatches(clientID, query.Offset(), query.PerPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, batches, total, query.Page, query.PerPage)
}

// PlanCampaign 策略规划
// 调用策略模型产出人群×角度的创意计划,供客户端编辑后提交。
func (h *CampaignHandler) PlanCampaign(c *gin.Context) {
	clientID := middleware.MustClientID(c)

	var req dto.PlanCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	resp, err := h.strategyService.PlanCampaign(c.Request.Context(), clientID, &req)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, resp)
}
