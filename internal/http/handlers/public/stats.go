package public

import (
	"github.com/credittalk/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetHomeStats 首页统计
func (h *Handler) GetHomeStats(c *gin.Context) {
	stats, err := h.StatsService.GetHomeStats(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.stats_failed", err)
		return
	}
	response.OK(c, stats)
}
