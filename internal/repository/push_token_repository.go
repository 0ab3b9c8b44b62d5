package repository

import (
	"errors"
	"time"

	"github.com/credittalk/api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PushTokenRepository 设备推送令牌数据访问接口
type PushTokenRepository interface {
	Upsert(token *models.DevicePushToken) error
	LatestActiveByUser(authUserID string) (*models.DevicePushToken, error)
	ListActive(excludeAuthUserID string) ([]models.DevicePushToken, error)
	Deactivate(tokens []string) error
	DeleteByUser(authUserID string) error
}

// GormPushTokenRepository GORM 实现
type GormPushTokenRepository struct {
	db *gorm.DB
}

// NewPushTokenRepository 创建推送令牌仓库
func NewPushTokenRepository(db *gorm.DB) *GormPushTokenRepository {
	return &GormPushTokenRepository{db: db}
}

// Upsert 保存推送令牌，同一令牌换绑用户时覆盖归属
func (r *GormPushTokenRepository) Upsert(token *models.DevicePushToken) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"auth_user_id": token.AuthUserID,
			"platform":     token.Platform,
			"is_active":    true,
			"updated_at":   time.Now(),
		}),
	}).Create(token).Error
}

// LatestActiveByUser 获取用户最近更新的有效令牌
func (r *GormPushTokenRepository) LatestActiveByUser(authUserID string) (*models.DevicePushToken, error) {
	var token models.DevicePushToken
	err := r.db.Where("auth_user_id = ? AND is_active = ?", authUserID, true).
		Order("updated_at DESC, id DESC").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

// ListActive 获取全部有效令牌，可排除指定用户（例如消息发送者本人）
func (r *GormPushTokenRepository) ListActive(excludeAuthUserID string) ([]models.DevicePushToken, error) {
	tokens := make([]models.DevicePushToken, 0)
	query := r.db.Where("is_active = ?", true)
	if excludeAuthUserID != "" {
		query = query.Where("auth_user_id <> ?", excludeAuthUserID)
	}
	if err := query.Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// Deactivate 将推送失败的令牌置为无效
func (r *GormPushTokenRepository) Deactivate(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.db.Model(&models.DevicePushToken{}).
		Where("token IN ?", tokens).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

// DeleteByUser 删除用户的全部令牌（注销账号时调用）
func (r *GormPushTokenRepository) DeleteByUser(authUserID string) error {
	return r.db.Where("auth_user_id = ?", authUserID).Delete(&models.DevicePushToken{}).Error
}
