package public

import (
	"github.com/credittalk/api/internal/http/response"
	"github.com/credittalk/api/internal/i18n"
	"github.com/credittalk/api/internal/service"

	"github.com/gin-gonic/gin"
)

// SendVerificationOTPRequest 发送验证码请求
type SendVerificationOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// SendVerificationOTP 发送手机验证码
func (h *Handler) SendVerificationOTP(c *gin.Context) {
	var req SendVerificationOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.PhoneVerifyService.IssueCode(c.Request.Context(), req.Phone); err != nil {
		respondOTPSendError(c, err)
		return
	}

	response.Success(c, i18n.T(i18n.ResolveLocale(c), "message.otp_sent"))
}

// VerifyAndSignupRequest 验证码校验 + 注册请求
type VerifyAndSignupRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Nickname    string `json:"nickname" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	JobType     string `json:"jobType" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

// VerifyAndSignup 校验验证码并一次性完成注册
func (h *Handler) VerifyAndSignup(c *gin.Context) {
	var req VerifyAndSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.fields_required", err)
		return
	}

	input := service.SignupInput{
		Phone:    req.PhoneNumber,
		Code:     req.OTP,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Nickname: req.Nickname,
		JobType:  req.JobType,
	}
	if _, err := h.PhoneVerifyService.VerifyAndSignup(c.Request.Context(), input); err != nil {
		respondSignupError(c, err)
		return
	}

	response.Created(c, i18n.T(i18n.ResolveLocale(c), "message.signup_done"))
}

// CheckEmail 检查邮箱是否可用
func (h *Handler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	available, err := h.UserAccountService.CheckEmailAvailability(c.Request.Context(), email)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}
	response.OK(c, gin.H{"available": available})
}

// CheckNickname 检查昵称是否可用
func (h *Handler) CheckNickname(c *gin.Context) {
	nickname := c.Query("nickname")
	available, err := h.UserAccountService.CheckNicknameAvailability(nickname)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}
	response.OK(c, gin.H{"available": available})
}

// FindEmailRequest 邮箱找回请求
type FindEmailRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// FindEmail 按姓名+手机号找回脱敏邮箱
func (h *Handler) FindEmail(c *gin.Context) {
	var req FindEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.fields_required", err)
		return
	}

	masked, err := h.UserAccountService.FindEmailByProfile(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		respondFindEmailError(c, err)
		return
	}
	response.OK(c, gin.H{"email": masked})
}

// NaverSignInRequest Naver 登录请求
type NaverSignInRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// NaverSignIn 使用 Naver 访问令牌登录或注册
func (h *Handler) NaverSignIn(c *gin.Context) {
	var req NaverSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	profile, token, expiresAt, err := h.UserAccountService.SignInWithNaver(c.Request.Context(), req.AccessToken)
	if err != nil {
		respondNaverError(c, err)
		return
	}
	response.OK(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"profile":    profile,
	})
}
