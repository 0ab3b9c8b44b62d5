package service

import "errors"

// 业务错误统一在此定义，处理器通过 errors.Is 分派响应
var (
	// 通用
	ErrNotFound       = errors.New("记录不存在")
	ErrFieldsRequired = errors.New("必填字段缺失")

	// 手机验证码
	ErrInvalidPhone  = errors.New("手机号格式不正确")
	ErrPhoneExists   = errors.New("手机号已注册")
	ErrOTPInvalid    = errors.New("验证码不正确")
	ErrOTPExpired    = errors.New("验证码已过期")
	ErrOTPUsed       = errors.New("验证码已被使用")
	ErrSMSSendFailed = errors.New("短信发送失败")

	// 注册与账号
	ErrInvalidEmail     = errors.New("邮箱格式不正确")
	ErrEmailExists      = errors.New("邮箱已被使用")
	ErrNicknameExists   = errors.New("昵称已被使用")
	ErrNicknameTooShort = errors.New("昵称长度不足")
	ErrSignupFailed     = errors.New("注册失败")

	// Naver 登录
	ErrNaverDisabled   = errors.New("Naver 登录未启用")
	ErrNaverAuthFailed = errors.New("Naver 登录校验失败")

	// 举报
	ErrEncryptionNotConfigured = errors.New("字段加密未配置")
	ErrAudioAnalysisFailed     = errors.New("录音分析失败")

	// 聊天
	ErrChatWithSelf = errors.New("不能与自己建立聊天")

	// 管理员
	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrAdminDisabled      = errors.New("管理员账号已禁用")
	ErrWeakPassword       = errors.New("密码强度不足")
)
