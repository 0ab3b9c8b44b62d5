package public

import (
	"errors"

	"github.com/credittalk/api/internal/http/response"
	"github.com/credittalk/api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var otpSendErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidPhone, code: response.CodeBadRequest, key: "error.phone_invalid"},
	{target: service.ErrPhoneExists, code: response.CodeConflict, key: "error.phone_exists"},
	{target: service.ErrSMSSendFailed, code: response.CodeBadGateway, key: "error.otp_send_failed"},
}

var signupErrorRules = []mappedHandlerError{
	{target: service.ErrFieldsRequired, code: response.CodeBadRequest, key: "error.fields_required"},
	{target: service.ErrInvalidPhone, code: response.CodeBadRequest, key: "error.phone_invalid"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrOTPInvalid, code: response.CodeBadRequest, key: "error.otp_invalid"},
	{target: service.ErrOTPExpired, code: response.CodeBadRequest, key: "error.otp_expired"},
	{target: service.ErrOTPUsed, code: response.CodeBadRequest, key: "error.otp_used"},
	{target: service.ErrNicknameTooShort, code: response.CodeBadRequest, key: "error.nickname_too_short"},
	{target: service.ErrNicknameExists, code: response.CodeConflict, key: "error.nickname_exists"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrPhoneExists, code: response.CodeConflict, key: "error.phone_exists"},
}

var availabilityErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrNicknameTooShort, code: response.CodeBadRequest, key: "error.nickname_too_short"},
}

var findEmailErrorRules = []mappedHandlerError{
	{target: service.ErrFieldsRequired, code: response.CodeBadRequest, key: "error.fields_required"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var naverErrorRules = []mappedHandlerError{
	{target: service.ErrNaverDisabled, code: response.CodeBadRequest, key: "error.naver_disabled"},
	{target: service.ErrNaverAuthFailed, code: response.CodeUnauthorized, key: "error.naver_auth_failed"},
	{target: service.ErrNicknameExists, code: response.CodeConflict, key: "error.nickname_exists"},
}

var reportCreateErrorRules = []mappedHandlerError{
	{target: service.ErrFieldsRequired, code: response.CodeBadRequest, key: "error.report_fields_required"},
	{target: service.ErrEncryptionNotConfigured, code: response.CodeInternal, key: "error.report_create_failed"},
}

var chatRoomErrorRules = []mappedHandlerError{
	{target: service.ErrFieldsRequired, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrChatWithSelf, code: response.CodeBadRequest, key: "error.chat_self"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

func respondOTPSendError(c *gin.Context, err error) {
	respondWithMappedError(c, err, otpSendErrorRules, response.CodeInternal, "error.otp_send_failed")
}

func respondSignupError(c *gin.Context, err error) {
	respondWithMappedError(c, err, signupErrorRules, response.CodeInternal, "error.signup_failed")
}

func respondAvailabilityError(c *gin.Context, err error) {
	respondWithMappedError(c, err, availabilityErrorRules, response.CodeInternal, "error.internal")
}

func respondFindEmailError(c *gin.Context, err error) {
	respondWithMappedError(c, err, findEmailErrorRules, response.CodeInternal, "error.internal")
}

func respondNaverError(c *gin.Context, err error) {
	respondWithMappedError(c, err, naverErrorRules, response.CodeInternal, "error.naver_auth_failed")
}

func respondReportCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reportCreateErrorRules, response.CodeInternal, "error.report_create_failed")
}

func respondChatRoomError(c *gin.Context, err error) {
	respondWithMappedError(c, err, chatRoomErrorRules, response.CodeInternal, "error.chat_room_create_failed")
}
