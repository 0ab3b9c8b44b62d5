package public

import (
	"strings"

	"github.com/credittalk/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// getAuthUserID 从上下文读取鉴权用户ID，缺失时返回 401。
func getAuthUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("auth_user_id")
	if !exists {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	id, ok := value.(string)
	if !ok || strings.TrimSpace(id) == "" {
		respondError(c, response.CodeUnauthorized, "error.user_id_invalid", nil)
		return "", false
	}
	return id, true
}

// optionalAuthUserID 读取可选的鉴权用户ID，无令牌时返回空串。
func optionalAuthUserID(c *gin.Context) string {
	value, exists := c.Get("auth_user_id")
	if !exists {
		return ""
	}
	if id, ok := value.(string); ok {
		return strings.TrimSpace(id)
	}
	return ""
}
