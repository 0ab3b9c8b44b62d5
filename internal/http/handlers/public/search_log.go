package public

import (
	"errors"

	"github.com/credittalk/api/internal/http/response"
	"github.com/credittalk/api/internal/i18n"
	"github.com/credittalk/api/internal/service"

	"github.com/gin-gonic/gin"
)

// LogSearchRequest 搜索记录请求
type LogSearchRequest struct {
	SearchTerm string `json:"search_term" binding:"required"`
}

// LogSearch 记录搜索词（可匿名）
func (h *Handler) LogSearch(c *gin.Context) {
	var req LogSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.search_term_required", err)
		return
	}

	if err := h.SearchLogService.Log(optionalAuthUserID(c), req.SearchTerm); err != nil {
		if errors.Is(err, service.ErrFieldsRequired) {
			respondError(c, response.CodeBadRequest, "error.search_term_required", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "message.search_logged"))
}
