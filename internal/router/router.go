package router

import (
	"fmt"
	"strings"

	"github.com/credittalk/api/internal/cache"
	"github.com/credittalk/api/internal/config"
	"github.com/credittalk/api/internal/constants"
	adminhandlers "github.com/credittalk/api/internal/http/handlers/admin"
	publichandlers "github.com/credittalk/api/internal/http/handlers/public"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	otpSendRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:otp_send", redisPrefix),
		WindowSeconds: cfg.Security.OTPRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OTPRateLimit.MaxAttempts,
		MessageKey:    "error.too_many_requests",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.too_many_requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证与注册
		auth := apiV1.Group("/auth")
		{
			auth.POST("/send-verification-otp", RateLimitMiddleware(redisClient, otpSendRule, KeyByIPAndJSONField("phone")), publicHandler.SendVerificationOTP)
			auth.POST("/verify-and-signup", publicHandler.VerifyAndSignup)
			auth.GET("/check-email", publicHandler.CheckEmail)
			auth.GET("/check-nickname", publicHandler.CheckNickname)
			auth.POST("/find-email", publicHandler.FindEmail)
			auth.POST("/naver", publicHandler.NaverSignIn)
		}

		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/home-stats", publicHandler.GetHomeStats)
		}

		// 匿名可用的提交接口（带令牌则记录身份）
		optional := apiV1.Group("")
		optional.Use(OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey))
		{
			optional.POST("/reports", publicHandler.CreateReport)
			optional.POST("/search-logs", publicHandler.LogSearch)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserProfileRepo))
		{
			user.GET("/me", publicHandler.GetMyProfile)
			user.DELETE("/me", publicHandler.DeleteMyAccount)
			user.POST("/me/push-token", publicHandler.SavePushToken)
			user.GET("/me/reports", publicHandler.GetMyReports)
			user.POST("/chat-rooms", publicHandler.CreateChatRoom)
			user.POST("/help-questions", publicHandler.CreateHelpQuestion)
		}

		// 内部钩子（由数据库触发器/边缘服务回调）
		hooks := apiV1.Group("/hooks")
		hooks.Use(HookAuthMiddleware(cfg.Identity.ServiceKey))
		{
			hooks.POST("/new-post", publicHandler.HookNewPost)
			hooks.POST("/new-comment", publicHandler.HookNewComment)
			hooks.POST("/chat-message", publicHandler.HookChatMessage)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.GET("/reports", adminHandler.ListReports)
				authorized.GET("/reports/:id", adminHandler.GetReport)
				authorized.POST("/reports/:id/analyze-audio", adminHandler.AnalyzeReportAudio)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
