package service

import (
	"context"
	"time"

	"github.com/credittalk/api/internal/cache"
	"github.com/credittalk/api/internal/constants"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/repository"

	"golang.org/x/sync/errgroup"
)

// kstLocation 统计口径使用韩国时区
var kstLocation = mustLoadKST()

func mustLoadKST() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// HomeStats 首页统计数据
type HomeStats struct {
	TodaySearchCount   int64     `json:"today_search_count"`
	TotalSearchCount   int64     `json:"total_search_count"`
	TodayReportCount   int64     `json:"today_report_count"`
	TotalReportCount   int64     `json:"total_report_count"`
	TodayQuestionCount int64     `json:"today_question_count"`
	TotalQuestionCount int64     `json:"total_question_count"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// StatsService 首页统计服务
type StatsService struct {
	searchLogRepo repository.SearchLogRepository
	reportRepo    repository.ScammerReportRepository
	questionRepo  repository.HelpQuestionRepository
	cacheTTL      time.Duration
}

// NewStatsService 创建统计服务
func NewStatsService(searchLogRepo repository.SearchLogRepository, reportRepo repository.ScammerReportRepository, questionRepo repository.HelpQuestionRepository) *StatsService {
	return &StatsService{
		searchLogRepo: searchLogRepo,
		reportRepo:    reportRepo,
		questionRepo:  questionRepo,
		cacheTTL:      60 * time.Second,
	}
}

// GetHomeStats 获取首页统计（带短缓存）
func (s *StatsService) GetHomeStats(ctx context.Context) (*HomeStats, error) {
	if cache.Enabled() {
		var cached HomeStats
		hit, err := cache.GetJSON(ctx, constants.HomeStatsCacheKey, &cached)
		if err != nil {
			logger.Warnw("读取统计缓存失败", "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	stats, err := s.computeHomeStats(ctx)
	if err != nil {
		return nil, err
	}

	if cache.Enabled() {
		if err := cache.SetJSON(ctx, constants.HomeStatsCacheKey, stats, s.cacheTTL); err != nil {
			logger.Warnw("写入统计缓存失败", "error", err)
		}
	}
	return stats, nil
}

func (s *StatsService) computeHomeStats(ctx context.Context) (*HomeStats, error) {
	now := time.Now().In(kstLocation)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, kstLocation)
	dayEnd := dayStart.Add(24 * time.Hour)

	stats := &HomeStats{GeneratedAt: now}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.searchLogRepo.CountCreatedBetween(dayStart, dayEnd)
		stats.TodaySearchCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.searchLogRepo.CountTotal()
		stats.TotalSearchCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.reportRepo.CountCreatedBetween(dayStart, dayEnd)
		stats.TodayReportCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.reportRepo.CountTotal()
		stats.TotalReportCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.questionRepo.CountCreatedBetween(dayStart, dayEnd)
		stats.TodayQuestionCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.questionRepo.CountTotal()
		stats.TotalQuestionCount = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
