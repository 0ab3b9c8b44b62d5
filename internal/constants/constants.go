package constants

// 验证码取值范围常量
const (
	OTPMin    = 100000
	OTPMax    = 999999
	OTPLength = 6
)

// 举报来源常量
const (
	ScamReportSourceApp = "app"
	ScamReportSourceWeb = "web"
)

// 举报音频分析状态常量
const (
	AudioAnalysisStatusPending  = "pending"
	AudioAnalysisStatusDone     = "done"
	AudioAnalysisStatusFailed   = "failed"
	AudioAnalysisStatusDetected = "detected"
)

// 推送平台常量
const (
	PushPlatformAndroid = "android"
	PushPlatformIOS     = "ios"
)

// 帮助台问题状态常量
const (
	HelpQuestionStatusOpen = "open"
)

// 队列常量
const (
	QueueDefault          = "default"
	QueueCritical         = "critical"
	TaskPushNewPost       = "push:new_post"
	TaskPushNewComment    = "push:new_comment"
	TaskPushChatMessage   = "push:chat_message"
	TaskSMSHelpdeskNotify = "sms:helpdesk_notify"
	TaskAudioAnalyze      = "report:audio_analyze"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ct"
	HomeStatsCacheKey  = "home_stats"
)

// 站点语言常量
const (
	LocaleKoKR = "ko-KR"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleKoKR, LocaleEnUS}

// 管理员状态常量
const (
	AdminStatusActive   = "active"
	AdminStatusDisabled = "disabled"
)

// 手机号国家区号常量
const (
	PhoneCountryCodeKR = "82"
)
