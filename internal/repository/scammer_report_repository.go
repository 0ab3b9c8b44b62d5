package repository

import (
	"errors"
	"time"

	"github.com/credittalk/api/internal/models"

	"gorm.io/gorm"
)

// ScammerReportRepository 诈骗举报数据访问接口
type ScammerReportRepository interface {
	Create(report *models.ScammerReport) error
	GetByID(id uint) (*models.ScammerReport, error)
	ListByReporter(authUserID string) ([]models.ScammerReport, error)
	List(filter ScammerReportListFilter) ([]models.ScammerReport, int64, error)
	Update(report *models.ScammerReport) error
	CountCreatedBetween(from, to time.Time) (int64, error)
	CountTotal() (int64, error)
}

// GormScammerReportRepository GORM 实现
type GormScammerReportRepository struct {
	db *gorm.DB
}

// NewScammerReportRepository 创建诈骗举报仓库
func NewScammerReportRepository(db *gorm.DB) *GormScammerReportRepository {
	return &GormScammerReportRepository{db: db}
}

// Create 创建举报记录
func (r *GormScammerReportRepository) Create(report *models.ScammerReport) error {
	return r.db.Create(report).Error
}

// GetByID 根据 ID 获取举报记录
func (r *GormScammerReportRepository) GetByID(id uint) (*models.ScammerReport, error) {
	var report models.ScammerReport
	if err := r.db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

// ListByReporter 获取指定用户的举报列表
func (r *GormScammerReportRepository) ListByReporter(authUserID string) ([]models.ScammerReport, error) {
	reports := make([]models.ScammerReport, 0)
	err := r.db.Where("reporter_auth_user_id = ?", authUserID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// List 分页查询举报列表
func (r *GormScammerReportRepository) List(filter ScammerReportListFilter) ([]models.ScammerReport, int64, error) {
	query := r.db.Model(&models.ScammerReport{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		operator := likeOperatorByDialect(dbDialectName(r.db))
		query = query.Where(
			"site_name "+operator+" ? OR impersonated_company "+operator+" ?",
			like, like,
		)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	reports := make([]models.ScammerReport, 0)
	if err := query.Order("id DESC").Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Update 更新举报记录
func (r *GormScammerReportRepository) Update(report *models.ScammerReport) error {
	return r.db.Save(report).Error
}

// CountCreatedBetween 统计时间区间内的举报数量
func (r *GormScammerReportRepository) CountCreatedBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ScammerReport{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// CountTotal 统计举报总量
func (r *GormScammerReportRepository) CountTotal() (int64, error) {
	var count int64
	err := r.db.Model(&models.ScammerReport{}).Count(&count).Error
	return count, err
}
