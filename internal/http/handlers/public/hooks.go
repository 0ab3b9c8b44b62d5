package public

import (
	"github.com/credittalk/api/internal/http/response"
	"github.com/credittalk/api/internal/queue"

	"github.com/gin-gonic/gin"
)

// HookNewPostRequest 新帖回调
type HookNewPostRequest struct {
	PostID           uint   `json:"post_id" binding:"required"`
	Title            string `json:"title" binding:"required"`
	AuthorAuthUserID string `json:"author_auth_user_id"`
}

// HookNewPost 新帖发布回调，触发广播推送
func (h *Handler) HookNewPost(c *gin.Context) {
	var req HookNewPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.QueueClient == nil || !h.QueueClient.Enabled() {
		respondError(c, response.CodeInternal, "error.internal", nil)
		return
	}
	payload := queue.PushNewPostPayload{
		PostID:           req.PostID,
		Title:            req.Title,
		AuthorAuthUserID: req.AuthorAuthUserID,
	}
	if err := h.QueueClient.EnqueuePushNewPost(payload); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.OK(c, gin.H{"queued": true})
}

// HookNewCommentRequest 新评论回调
type HookNewCommentRequest struct {
	PostID               uint   `json:"post_id" binding:"required"`
	CommentPreview       string `json:"comment_preview"`
	PostAuthorAuthUserID string `json:"post_author_auth_user_id" binding:"required"`
	CommenterAuthUserID  string `json:"commenter_auth_user_id"`
}

// HookNewComment 新评论回调，推送帖子作者
func (h *Handler) HookNewComment(c *gin.Context) {
	var req HookNewCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.QueueClient == nil || !h.QueueClient.Enabled() {
		respondError(c, response.CodeInternal, "error.internal", nil)
		return
	}
	payload := queue.PushNewCommentPayload{
		PostID:               req.PostID,
		CommentPreview:       req.CommentPreview,
		PostAuthorAuthUserID: req.PostAuthorAuthUserID,
		CommenterAuthUserID:  req.CommenterAuthUserID,
	}
	if err := h.QueueClient.EnqueuePushNewComment(payload); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.OK(c, gin.H{"queued": true})
}

// HookChatMessageRequest 聊天消息回调
type HookChatMessageRequest struct {
	RoomID             uint   `json:"room_id" binding:"required"`
	SenderAuthUserID   string `json:"sender_auth_user_id"`
	SenderNickname     string `json:"sender_nickname"`
	MessagePreview     string `json:"message_preview"`
	ReceiverAuthUserID string `json:"receiver_auth_user_id" binding:"required"`
}

// HookChatMessage 聊天消息回调，推送接收方
func (h *Handler) HookChatMessage(c *gin.Context) {
	var req HookChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.QueueClient == nil || !h.QueueClient.Enabled() {
		respondError(c, response.CodeInternal, "error.internal", nil)
		return
	}
	payload := queue.PushChatMessagePayload{
		RoomID:             req.RoomID,
		SenderAuthUserID:   req.SenderAuthUserID,
		SenderNickname:     req.SenderNickname,
		MessagePreview:     req.MessagePreview,
		ReceiverAuthUserID: req.ReceiverAuthUserID,
	}
	if err := h.QueueClient.EnqueuePushChatMessage(payload); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.OK(c, gin.H{"queued": true})
}
