package repository

import (
	"time"

	"github.com/credittalk/api/internal/models"

	"gorm.io/gorm"
)

// SearchLogRepository 搜索记录数据访问接口
type SearchLogRepository interface {
	Create(log *models.SearchLog) error
	CountCreatedBetween(from, to time.Time) (int64, error)
	CountTotal() (int64, error)
	CountDistinctUsersBetween(from, to time.Time) (int64, error)
}

// GormSearchLogRepository GORM 实现
type GormSearchLogRepository struct {
	db *gorm.DB
}

// NewSearchLogRepository 创建搜索记录仓库
func NewSearchLogRepository(db *gorm.DB) *GormSearchLogRepository {
	return &GormSearchLogRepository{db: db}
}

// Create 创建搜索记录
func (r *GormSearchLogRepository) Create(log *models.SearchLog) error {
	return r.db.Create(log).Error
}

// CountCreatedBetween 统计时间区间内的搜索次数
func (r *GormSearchLogRepository) CountCreatedBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.SearchLog{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// CountTotal 统计搜索总量
func (r *GormSearchLogRepository) CountTotal() (int64, error) {
	var count int64
	err := r.db.Model(&models.SearchLog{}).Count(&count).Error
	return count, err
}

// CountDistinctUsersBetween 统计时间区间内的去重搜索用户数
func (r *GormSearchLogRepository) CountDistinctUsersBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.SearchLog{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Distinct("auth_user_id").
		Count(&count).Error
	return count, err
}
