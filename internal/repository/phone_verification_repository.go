package repository

import (
	"errors"
	"time"

	"github.com/credittalk/api/internal/models"

	"gorm.io/gorm"
)

// PhoneVerificationRepository 手机验证码数据访问接口
type PhoneVerificationRepository interface {
	Create(record *models.PhoneVerification) error
	GetByPhoneAndHash(phone, hashedOTP string) (*models.PhoneVerification, error)
	DeleteByPhone(phone string) error
	DeleteByID(id uint) error
	ConsumeIfUnused(id uint, usedAt time.Time) (bool, error)
}

// GormPhoneVerificationRepository GORM 实现
type GormPhoneVerificationRepository struct {
	db *gorm.DB
}

// NewPhoneVerificationRepository 创建手机验证码仓库
func NewPhoneVerificationRepository(db *gorm.DB) *GormPhoneVerificationRepository {
	return &GormPhoneVerificationRepository{db: db}
}

// Create 创建验证码记录
func (r *GormPhoneVerificationRepository) Create(record *models.PhoneVerification) error {
	return r.db.Create(record).Error
}

// GetByPhoneAndHash 根据手机号与验证码摘要查找记录
func (r *GormPhoneVerificationRepository) GetByPhoneAndHash(phone, hashedOTP string) (*models.PhoneVerification, error) {
	var record models.PhoneVerification
	if err := r.db.Where("phone = ? AND hashed_otp = ?", phone, hashedOTP).
		Order("created_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// DeleteByPhone 删除该手机号的全部验证码记录（物理删除）
func (r *GormPhoneVerificationRepository) DeleteByPhone(phone string) error {
	return r.db.Unscoped().Where("phone = ?", phone).Delete(&models.PhoneVerification{}).Error
}

// DeleteByID 删除指定验证码记录（物理删除）
func (r *GormPhoneVerificationRepository) DeleteByID(id uint) error {
	return r.db.Unscoped().Where("id = ?", id).Delete(&models.PhoneVerification{}).Error
}

// ConsumeIfUnused 以原子条件更新标记验证码已消费
// 返回 false 表示记录已被其他请求消费。
func (r *GormPhoneVerificationRepository) ConsumeIfUnused(id uint, usedAt time.Time) (bool, error) {
	result := r.db.Model(&models.PhoneVerification{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", usedAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
