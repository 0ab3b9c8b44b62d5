package config

import (
	"fmt"
	"strings"

	"github.com/credittalk/api/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	UserJWT    JWTConfig        `mapstructure:"user_jwt"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Queue      QueueConfig      `mapstructure:"queue"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Security   SecurityConfig   `mapstructure:"security"`
	OTP        OTPConfig        `mapstructure:"otp"`
	SMS        SMSConfig        `mapstructure:"sms"`
	Push       PushConfig       `mapstructure:"push"`
	Identity   IdentityConfig   `mapstructure:"identity"`
	Naver      NaverConfig      `mapstructure:"naver"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Encryption EncryptionConfig `mapstructure:"encryption"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	OTPRateLimit   OTPRateLimitConfig `mapstructure:"otp_rate_limit"`
	LoginRateLimit OTPRateLimitConfig `mapstructure:"login_rate_limit"`
	PasswordPolicy PasswordPolicy     `mapstructure:"password_policy"`
}

// OTPRateLimitConfig 验证码发送限流配置
type OTPRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// PasswordPolicy 管理员密码策略
type PasswordPolicy struct {
	MinLength     int  `mapstructure:"min_length"`
	RequireNumber bool `mapstructure:"require_number"`
}

// OTPConfig 手机验证码配置
type OTPConfig struct {
	ExpireMinutes int `mapstructure:"expire_minutes"`
}

// SMSConfig Naver SENS 短信配置
type SMSConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ServiceID  string `mapstructure:"service_id"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	FromNumber string `mapstructure:"from_number"`
	BaseURL    string `mapstructure:"base_url"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
}

// PushConfig FCM HTTP v1 推送配置
type PushConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	ProjectID          string `mapstructure:"project_id"`
	ServiceAccountJSON string `mapstructure:"service_account_json"` // 服务账号密钥文件路径
	TimeoutMS          int    `mapstructure:"timeout_ms"`
}

// IdentityConfig 身份服务（GoTrue 管理接口）配置
type IdentityConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
}

// NaverConfig Naver 开放平台登录配置
type NaverConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ProfileURL     string `mapstructure:"profile_url"`
	TimeoutMS      int    `mapstructure:"timeout_ms"`
	EmailDomainPad string `mapstructure:"email_domain_pad"` // 无邮箱账号的兜底域名
}

// SpeechConfig Google Speech v2 语音识别配置
type SpeechConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	ProjectID          string `mapstructure:"project_id"`
	Location           string `mapstructure:"location"`
	Recognizer         string `mapstructure:"recognizer"`
	ServiceAccountJSON string `mapstructure:"service_account_json"`
	TimeoutMS          int    `mapstructure:"timeout_ms"`
}

// EncryptionConfig 敏感字段加密配置
type EncryptionConfig struct {
	// 32 字节密钥的十六进制编码，供 AES-256-GCM 使用
	KeyHex string `mapstructure:"key_hex"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("./")    // 备用路径
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	// 设置默认值（可选）
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "credittalk.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/credittalk.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expire_hours", 24)
	viper.SetDefault("user_jwt.secret", "user-change-me-in-production")
	viper.SetDefault("user_jwt.expire_hours", 24)
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "ct")
	viper.SetDefault("queue.enabled", true)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("security.otp_rate_limit.window_seconds", 60)
	viper.SetDefault("security.otp_rate_limit.max_attempts", 5)
	viper.SetDefault("security.login_rate_limit.window_seconds", 300)
	viper.SetDefault("security.login_rate_limit.max_attempts", 10)
	viper.SetDefault("security.password_policy.min_length", 8)
	viper.SetDefault("security.password_policy.require_number", true)
	viper.SetDefault("otp.expire_minutes", 5)
	viper.SetDefault("sms.enabled", false)
	viper.SetDefault("sms.service_id", "")
	viper.SetDefault("sms.access_key", "")
	viper.SetDefault("sms.secret_key", "")
	viper.SetDefault("sms.from_number", "")
	viper.SetDefault("sms.base_url", "https://sens.apigw.ntruss.com")
	viper.SetDefault("sms.timeout_ms", 5000)
	viper.SetDefault("push.enabled", false)
	viper.SetDefault("push.project_id", "")
	viper.SetDefault("push.service_account_json", "")
	viper.SetDefault("push.timeout_ms", 5000)
	viper.SetDefault("identity.base_url", "http://127.0.0.1:9999")
	viper.SetDefault("identity.service_key", "")
	viper.SetDefault("identity.timeout_ms", 5000)
	viper.SetDefault("naver.enabled", false)
	viper.SetDefault("naver.profile_url", "https://openapi.naver.com/v1/nid/me")
	viper.SetDefault("naver.timeout_ms", 5000)
	viper.SetDefault("naver.email_domain_pad", "naver.credittalk.local")
	viper.SetDefault("speech.enabled", false)
	viper.SetDefault("speech.project_id", "")
	viper.SetDefault("speech.location", "global")
	viper.SetDefault("speech.recognizer", "_")
	viper.SetDefault("speech.service_account_json", "")
	viper.SetDefault("speech.timeout_ms", 30000)
	viper.SetDefault("encryption.key_hex", "")

	// 环境变量支持
	viper.AutomaticEnv()                                   // 自动读取环境变量
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // 将 . 替换为 _ (例如 server.port -> SERVER_PORT)

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}

	return &cfg
}
