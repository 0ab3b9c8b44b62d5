package public

import (
	"errors"

	"github.com/credittalk/api/internal/http/response"
	"github.com/credittalk/api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateHelpQuestionRequest 帮助台提问请求
type CreateHelpQuestionRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// CreateHelpQuestion 提交帮助台提问
func (h *Handler) CreateHelpQuestion(c *gin.Context) {
	authUserID, ok := getAuthUserID(c)
	if !ok {
		return
	}

	var req CreateHelpQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	question, err := h.HelpQuestionService.Create(authUserID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrFieldsRequired) {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.CreatedData(c, gin.H{"id": question.ID})
}
