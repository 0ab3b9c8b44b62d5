package repository

import (
	"errors"

	"github.com/credittalk/api/internal/models"

	"gorm.io/gorm"
)

// UserProfileRepository 用户资料数据访问接口
type UserProfileRepository interface {
	Create(profile *models.UserProfile) error
	GetByAuthUserID(authUserID string) (*models.UserProfile, error)
	GetByNickname(nickname string) (*models.UserProfile, error)
	GetByPhoneNumber(phone string) (*models.UserProfile, error)
	GetByNameAndPhone(name, phone string) (*models.UserProfile, error)
	GetByNaverID(naverID string) (*models.UserProfile, error)
	Update(profile *models.UserProfile) error
	DeleteByAuthUserID(authUserID string) error
}

// GormUserProfileRepository GORM 实现
type GormUserProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository 创建用户资料仓库
func NewUserProfileRepository(db *gorm.DB) *GormUserProfileRepository {
	return &GormUserProfileRepository{db: db}
}

// Create 创建用户资料
func (r *GormUserProfileRepository) Create(profile *models.UserProfile) error {
	return r.db.Create(profile).Error
}

// GetByAuthUserID 根据身份服务用户ID获取资料
func (r *GormUserProfileRepository) GetByAuthUserID(authUserID string) (*models.UserProfile, error) {
	return r.firstBy("auth_user_id = ?", authUserID)
}

// GetByNickname 根据昵称获取资料
func (r *GormUserProfileRepository) GetByNickname(nickname string) (*models.UserProfile, error) {
	return r.firstBy("nickname = ?", nickname)
}

// GetByPhoneNumber 根据手机号获取资料
func (r *GormUserProfileRepository) GetByPhoneNumber(phone string) (*models.UserProfile, error) {
	return r.firstBy("phone_number = ?", phone)
}

// GetByNameAndPhone 根据姓名与手机号获取资料
func (r *GormUserProfileRepository) GetByNameAndPhone(name, phone string) (*models.UserProfile, error) {
	return r.firstBy("name = ? AND phone_number = ?", name, phone)
}

// GetByNaverID 根据 Naver 绑定 ID 获取资料
func (r *GormUserProfileRepository) GetByNaverID(naverID string) (*models.UserProfile, error) {
	return r.firstBy("naver_id = ?", naverID)
}

// Update 更新用户资料
func (r *GormUserProfileRepository) Update(profile *models.UserProfile) error {
	return r.db.Save(profile).Error
}

// DeleteByAuthUserID 删除用户资料
func (r *GormUserProfileRepository) DeleteByAuthUserID(authUserID string) error {
	return r.db.Where("auth_user_id = ?", authUserID).Delete(&models.UserProfile{}).Error
}

func (r *GormUserProfileRepository) firstBy(query string, args ...interface{}) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where(query, args...).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
