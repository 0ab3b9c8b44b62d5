package main

import (
	"flag"
	"strings"

	"github.com/credittalk/api/internal/config"
	"github.com/credittalk/api/internal/constants"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// 管理员账号初始化工具。
// 用法: go run ./cmd/seed -username admin -password 'secret123' -phone 01012345678
func main() {
	var (
		username string
		password string
		phone    string
	)
	flag.StringVar(&username, "username", "admin", "管理员账号")
	flag.StringVar(&password, "password", "", "管理员密码（必填）")
	flag.StringVar(&phone, "phone", "", "接收帮助台短信通知的手机号（可选）")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if strings.TrimSpace(password) == "" {
		stdLog.Fatalf("缺少 -password 参数")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("密码哈希失败: %v", err)
	}

	var existing models.Admin
	err = models.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		existing.PasswordHash = string(hash)
		existing.Status = constants.AdminStatusActive
		if phone != "" {
			existing.PhoneNumber = phone
		}
		if err := models.DB.Save(&existing).Error; err != nil {
			stdLog.Fatalf("更新管理员失败: %v", err)
		}
		stdLog.Printf("管理员已更新: %s", username)
		return
	}

	admin := models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		PhoneNumber:  phone,
		Status:       constants.AdminStatusActive,
	}
	if err := models.DB.Create(&admin).Error; err != nil {
		stdLog.Fatalf("创建管理员失败: %v", err)
	}
	stdLog.Printf("管理员已创建: %s", username)
}
