package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/credittalk/api/internal/constants"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newStatsTestService(t *testing.T, name string) (*StatsService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.SearchLog{}, &models.ScammerReport{}, &models.HelpQuestion{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewStatsService(
		repository.NewSearchLogRepository(db),
		repository.NewScammerReportRepository(db),
		repository.NewHelpQuestionRepository(db),
	)
	return svc, db
}

// backdate 将记录的创建时间改到统计窗口之外
func backdate(t *testing.T, db *gorm.DB, model interface{}, id uint) {
	t.Helper()
	old := time.Now().In(kstLocation).AddDate(0, 0, -3)
	if err := db.Model(model).Where("id = ?", id).Update("created_at", old).Error; err != nil {
		t.Fatalf("backdate failed: %v", err)
	}
}

func TestComputeHomeStats(t *testing.T) {
	svc, db := newStatsTestService(t, "stats_compute")

	logs := []models.SearchLog{
		{AuthUserID: "auth-1", SearchTerm: "01012345678"},
		{AuthUserID: "auth-2", SearchTerm: "보이스피싱"},
		{AuthUserID: "auth-1", SearchTerm: "중고거래"},
	}
	for i := range logs {
		if err := db.Create(&logs[i]).Error; err != nil {
			t.Fatalf("create search log failed: %v", err)
		}
	}
	backdate(t, db, &models.SearchLog{}, logs[2].ID)

	reports := []models.ScammerReport{
		{Category: "보이스피싱", ScamReportSource: constants.ScamReportSourceApp, CompanyType: "개인", Gender: "남성"},
		{Category: "중고거래 사기", ScamReportSource: constants.ScamReportSourceWeb, CompanyType: "개인", Gender: "여성"},
	}
	for i := range reports {
		if err := db.Create(&reports[i]).Error; err != nil {
			t.Fatalf("create report failed: %v", err)
		}
	}
	backdate(t, db, &models.ScammerReport{}, reports[1].ID)

	question := models.HelpQuestion{AuthUserID: "auth-1", Title: "환불 문의", Content: "문의 내용"}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("create question failed: %v", err)
	}

	stats, err := svc.computeHomeStats(context.Background())
	if err != nil {
		t.Fatalf("compute stats failed: %v", err)
	}
	if stats.TodaySearchCount != 2 || stats.TotalSearchCount != 3 {
		t.Fatalf("unexpected search counts: today=%d total=%d", stats.TodaySearchCount, stats.TotalSearchCount)
	}
	if stats.TodayReportCount != 1 || stats.TotalReportCount != 2 {
		t.Fatalf("unexpected report counts: today=%d total=%d", stats.TodayReportCount, stats.TotalReportCount)
	}
	if stats.TodayQuestionCount != 1 || stats.TotalQuestionCount != 1 {
		t.Fatalf("unexpected question counts: today=%d total=%d", stats.TodayQuestionCount, stats.TotalQuestionCount)
	}
	if stats.GeneratedAt.IsZero() {
		t.Fatalf("expected generated_at to be set")
	}
}

func TestGetHomeStatsEmpty(t *testing.T) {
	svc, _ := newStatsTestService(t, "stats_empty")

	stats, err := svc.GetHomeStats(context.Background())
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if stats.TotalSearchCount != 0 || stats.TotalReportCount != 0 || stats.TotalQuestionCount != 0 {
		t.Fatalf("expected zero totals, got %+v", stats)
	}
}
