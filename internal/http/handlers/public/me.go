package public

import (
	"errors"

	"github.com/credittalk/api/internal/http/response"
	"github.com/credittalk/api/internal/i18n"
	"github.com/credittalk/api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMyProfile 获取当前用户资料
func (h *Handler) GetMyProfile(c *gin.Context) {
	authUserID, ok := getAuthUserID(c)
	if !ok {
		return
	}

	profile, err := h.UserAccountService.GetProfile(authUserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.profile_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.OK(c, profile)
}

// DeleteMyAccount 注销当前账号
func (h *Handler) DeleteMyAccount(c *gin.Context) {
	authUserID, ok := getAuthUserID(c)
	if !ok {
		return
	}

	if err := h.UserAccountService.DeleteAccount(c.Request.Context(), authUserID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.profile_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, i18n.T(i18n.ResolveLocale(c), "message.account_deleted"))
}

// SavePushTokenRequest 保存推送令牌请求
type SavePushTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}

// SavePushToken 保存设备推送令牌
func (h *Handler) SavePushToken(c *gin.Context) {
	authUserID, ok := getAuthUserID(c)
	if !ok {
		return
	}

	var req SavePushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.NotificationService.SavePushToken(authUserID, req.Token, req.Platform); err != nil {
		if errors.Is(err, service.ErrFieldsRequired) {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, i18n.T(i18n.ResolveLocale(c), "message.push_token_saved"))
}
