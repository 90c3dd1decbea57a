package handler

import (
	"errors"
	"net/http"

	"adgen-go/internal/config"
	"adgen-go/internal/dto"
	"adgen-go/internal/service"
	"adgen-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler 客户工作区处理器
type ClientHandler struct {
	clientService *service.ClientService
	tokenManager  *utils.WorkspaceTokenManager
	cfg           *config.Config
}

// NewClientHandler 创建工作区处理器
func NewClientHandler(clientService *service.ClientService, tokenManager *utils.WorkspaceTokenManager, cfg *config.Config) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		tokenManager:  tokenManager,
		cfg:           cfg,
	}
}

// CreateClient 创建工作区
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Create(&req)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "工作区创建成功", client)
}

// ListClients 获取工作区列表
func (h *ClientHandler) ListClients(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	clients, total, err := h.clientService.List(query.Offset(), query.PerPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, clients, total, query.Page, query.PerPage)
}

// GetClient 获取工作区
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, client)
}

// UpdateClient 更新工作区
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Update(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, client)
}

// SwitchClient 切换当前工作区
// 签发工作区Token并写入Cookie,后续请求据此确定数据作用域。
func (h *ClientHandler) SwitchClient(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	token, err := h.tokenManager.IssueToken(client.ID, client.Slug)
	if err != nil {
		utils.InternalError(c, "签发工作区Token失败")
		return
	}

	maxAge := int(h.cfg.Workspace.GetExpireDuration().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Workspace.CookieName, token, maxAge, "/", "", false, true)

	utils.SuccessWithMessage(c, "工作区已切换", dto.SwitchClientResponse{
		ClientID:   client.ID,
		ClientSlug: client.Slug,
	})
}
