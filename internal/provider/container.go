package provider

import (
	"github.com/credittalk/api/internal/cache"
	"github.com/credittalk/api/internal/config"
	"github.com/credittalk/api/internal/encryption"
	"github.com/credittalk/api/internal/identity"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/naver"
	"github.com/credittalk/api/internal/push"
	"github.com/credittalk/api/internal/queue"
	"github.com/credittalk/api/internal/repository"
	"github.com/credittalk/api/internal/service"
	"github.com/credittalk/api/internal/sms"
	"github.com/credittalk/api/internal/stt"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// 外部客户端
	IdentityService identity.Service
	SMSSender       sms.Sender
	PushSender      push.Sender
	Transcriber     stt.Transcriber
	NaverClient     naver.ProfileFetcher
	Cipher          *encryption.Cipher

	// Repositories
	AdminRepo             repository.AdminRepository
	UserProfileRepo       repository.UserProfileRepository
	PhoneVerificationRepo repository.PhoneVerificationRepository
	ScammerReportRepo     repository.ScammerReportRepository
	ChatRepo              repository.ChatRepository
	SearchLogRepo         repository.SearchLogRepository
	PushTokenRepo         repository.PushTokenRepository
	HelpQuestionRepo      repository.HelpQuestionRepository

	// Services
	AuthService         *service.AuthService
	PhoneVerifyService  *service.PhoneVerifyService
	UserAccountService  *service.UserAccountService
	ReportService       *service.ReportService
	StatsService        *service.StatsService
	ChatService         *service.ChatService
	SearchLogService    *service.SearchLogService
	HelpQuestionService *service.HelpQuestionService
	NotificationService *service.NotificationService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化外部客户端
	c.initClients()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initClients() {
	cfg := c.Config

	if cfg.Identity.BaseURL != "" {
		client, err := identity.NewClient(&cfg.Identity)
		if err != nil {
			logger.Errorw("provider_init_identity_failed", "error", err)
		} else {
			c.IdentityService = client
		}
	} else {
		logger.Warnw("provider_identity_disabled")
	}

	if cfg.SMS.Enabled {
		client, err := sms.NewSENSClient(&cfg.SMS)
		if err != nil {
			logger.Errorw("provider_init_sms_failed", "error", err)
		} else {
			c.SMSSender = client
		}
	}

	if cfg.Push.ProjectID != "" && cfg.Push.ServiceAccountJSON != "" {
		client, err := push.NewFCMClient(&cfg.Push)
		if err != nil {
			logger.Errorw("provider_init_push_failed", "error", err)
		} else {
			c.PushSender = client
		}
	}

	if cfg.Speech.ProjectID != "" && cfg.Speech.ServiceAccountJSON != "" {
		client, err := stt.NewGoogleSpeechClient(&cfg.Speech)
		if err != nil {
			logger.Errorw("provider_init_speech_failed", "error", err)
		} else {
			c.Transcriber = client
		}
	}

	if cfg.Naver.Enabled {
		client, err := naver.NewClient(&cfg.Naver)
		if err != nil {
			logger.Errorw("provider_init_naver_failed", "error", err)
		} else {
			c.NaverClient = client
		}
	}

	if cfg.Encryption.KeyHex != "" {
		cipher, err := encryption.New(cfg.Encryption.KeyHex)
		if err != nil {
			logger.Errorw("provider_init_encryption_failed", "error", err)
		} else {
			c.Cipher = cipher
		}
	} else {
		logger.Warnw("provider_encryption_key_missing")
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserProfileRepo = repository.NewUserProfileRepository(db)
	c.PhoneVerificationRepo = repository.NewPhoneVerificationRepository(db)
	c.ScammerReportRepo = repository.NewScammerReportRepository(db)
	c.ChatRepo = repository.NewChatRepository(db)
	c.SearchLogRepo = repository.NewSearchLogRepository(db)
	c.PushTokenRepo = repository.NewPushTokenRepository(db)
	c.HelpQuestionRepo = repository.NewHelpQuestionRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.PhoneVerifyService = service.NewPhoneVerifyService(c.Config, c.PhoneVerificationRepo, c.UserProfileRepo, c.IdentityService, c.SMSSender)
	c.UserAccountService = service.NewUserAccountService(c.Config, c.UserProfileRepo, c.PushTokenRepo, c.IdentityService, c.NaverClient)
	c.ReportService = service.NewReportService(c.ScammerReportRepo, c.Cipher, c.QueueClient, c.Transcriber)
	c.StatsService = service.NewStatsService(c.SearchLogRepo, c.ScammerReportRepo, c.HelpQuestionRepo)
	c.ChatService = service.NewChatService(c.ChatRepo, c.UserProfileRepo)
	c.SearchLogService = service.NewSearchLogService(c.SearchLogRepo)
	c.HelpQuestionService = service.NewHelpQuestionService(c.HelpQuestionRepo, c.QueueClient)
	c.NotificationService = service.NewNotificationService(c.PushTokenRepo, c.AdminRepo, c.PushSender, c.SMSSender)
}
