package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newHelpQuestionTestService(t *testing.T, name string) (*HelpQuestionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.HelpQuestion{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewHelpQuestionService(repository.NewHelpQuestionRepository(db), nil), db
}

func TestHelpQuestionCreate(t *testing.T) {
	svc, db := newHelpQuestionTestService(t, "helpq_create")

	question, err := svc.Create("auth-1", "  환불 문의  ", "  환불이 안 됩니다.  ")
	if err != nil {
		t.Fatalf("create question failed: %v", err)
	}
	if question.Title != "환불 문의" {
		t.Fatalf("expected trimmed title, got %q", question.Title)
	}
	if question.Content != "환불이 안 됩니다." {
		t.Fatalf("expected trimmed content, got %q", question.Content)
	}

	var stored models.HelpQuestion
	if err := db.First(&stored, question.ID).Error; err != nil {
		t.Fatalf("load question failed: %v", err)
	}
	if stored.Status != "open" {
		t.Fatalf("expected open status, got %q", stored.Status)
	}
}

func TestHelpQuestionCreateValidation(t *testing.T) {
	svc, _ := newHelpQuestionTestService(t, "helpq_validate")

	if _, err := svc.Create("", "제목", "내용"); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired for blank user, got: %v", err)
	}
	if _, err := svc.Create("auth-1", "   ", "내용"); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired for blank title, got: %v", err)
	}
}

func TestSearchLogRecord(t *testing.T) {
	dsn := fmt.Sprintf("file:searchlog_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.SearchLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewSearchLogService(repository.NewSearchLogRepository(db))

	if err := svc.Log("auth-1", "   "); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired for blank term, got: %v", err)
	}
	if err := svc.Log("auth-1", "  010-1234-5678  "); err != nil {
		t.Fatalf("log search failed: %v", err)
	}

	var stored models.SearchLog
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load search log failed: %v", err)
	}
	if stored.SearchTerm != "010-1234-5678" {
		t.Fatalf("expected trimmed term, got %q", stored.SearchTerm)
	}
}
