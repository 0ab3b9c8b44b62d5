package repository

import (
	"errors"
	"time"

	"github.com/credittalk/api/internal/models"

	"gorm.io/gorm"
)

// HelpQuestionRepository 帮助台提问数据访问接口
type HelpQuestionRepository interface {
	Create(question *models.HelpQuestion) error
	GetByID(id uint) (*models.HelpQuestion, error)
	CountCreatedBetween(from, to time.Time) (int64, error)
	CountTotal() (int64, error)
}

// GormHelpQuestionRepository GORM 实现
type GormHelpQuestionRepository struct {
	db *gorm.DB
}

// NewHelpQuestionRepository 创建帮助台提问仓库
func NewHelpQuestionRepository(db *gorm.DB) *GormHelpQuestionRepository {
	return &GormHelpQuestionRepository{db: db}
}

// Create 创建提问
func (r *GormHelpQuestionRepository) Create(question *models.HelpQuestion) error {
	return r.db.Create(question).Error
}

// GetByID 根据 ID 获取提问
func (r *GormHelpQuestionRepository) GetByID(id uint) (*models.HelpQuestion, error) {
	var question models.HelpQuestion
	if err := r.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

// CountCreatedBetween 统计时间区间内的提问数量
func (r *GormHelpQuestionRepository) CountCreatedBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.HelpQuestion{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// CountTotal 统计提问总量
func (r *GormHelpQuestionRepository) CountTotal() (int64, error) {
	var count int64
	err := r.db.Model(&models.HelpQuestion{}).Count(&count).Error
	return count, err
}
