package middleware

import (
	"strconv"

	"adgen-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextClientID   = "client_id"
	ContextClientSlug = "client_slug"
)

// WorkspaceScope 工作区作用域中间件
// 从签名Cookie解析当前工作区,缺失时回退X-Workspace-ID请求头
// (方便API调用方和测试)。两者都没有时拒绝请求。
// 注意:这只是工作区选择机制,不是认证边界。
func WorkspaceScope(cookieName string, tokenManager *utils.WorkspaceTokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			claims, err := tokenManager.ParseToken(token)
			if err == nil {
				c.Set(ContextClientID, claims.ClientID)
				c.Set(ContextClientSlug, claims.ClientSlug)
				c.Next()
				return
			}
			// Cookie损坏或过期,继续尝试请求头
		}

		if header := c.GetHeader("X-Workspace-ID"); header != "" {
			id, err := strconv.ParseUint(header, 10, 32)
			if err == nil && id > 0 {
				c.Set(ContextClientID, uint(id))
				c.Next()
				return
			}
		}

		utils.BadRequest(c, "未选择工作区,请先切换工作区")
		c.Abort()
	}
}

// GetClientID 从上下文获取当前工作区ID
func GetClientID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextClientID)
	if !exists {
		return 0, false
	}
	clientID, ok := value.(uint)
	return clientID, ok
}

// MustClientID 获取当前工作区ID,中间件保证其存在
func MustClientID(c *gin.Context) uint {
	clientID, _ := GetClientID(c)
	return clientID
}
