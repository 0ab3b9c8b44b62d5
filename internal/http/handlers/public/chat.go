package public

import (
	"net/http"

	"github.com/credittalk/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateChatRoomRequest 创建私聊请求
type CreateChatRoomRequest struct {
	PartnerAuthUserID string `json:"partner_auth_user_id" binding:"required"`
}

// CreateChatRoom 创建（或复用）一对一聊天房间
func (h *Handler) CreateChatRoom(c *gin.Context) {
	authUserID, ok := getAuthUserID(c)
	if !ok {
		return
	}

	var req CreateChatRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	room, created, err := h.ChatService.CreateDirectRoom(authUserID, req.PartnerAuthUserID)
	if err != nil {
		respondChatRoomError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"room_id": room.ID, "created": created})
}
