package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/credittalk/api/internal/constants"
	"github.com/credittalk/api/internal/encryption"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const reportTestKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type fakeTranscriber struct {
	transcript string
	err        error
	received   []byte
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio []byte) (string, error) {
	f.received = audio
	return f.transcript, f.err
}

func newReportTestService(t *testing.T, name string, transcriber *fakeTranscriber) (*ReportService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ScammerReport{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cipher, err := encryption.New(reportTestKeyHex)
	if err != nil {
		t.Fatalf("new cipher failed: %v", err)
	}
	svc := NewReportService(repository.NewScammerReportRepository(db), cipher, nil, nil)
	if transcriber != nil {
		svc.transcriber = transcriber
	}
	return svc, db
}

func boolPtr(v bool) *bool { return &v }

func validReportInput() CreateReportInput {
	return CreateReportInput{
		ReporterAuthUserID:    "auth-1",
		Category:              "보이스피싱",
		ScamReportSource:      constants.ScamReportSourceApp,
		CompanyType:           "개인",
		Gender:                "male",
		PerpetratorIdentified: boolPtr(true),
		AttemptedFraud:        boolPtr(false),
		Name:                  "김사기",
		PhoneNumber:           "010-9999-8888",
		AccountNumber:         "110-123-456789",
		Description:           "대출 빙자 사기",
		ClientIP:              "203.0.113.7",
	}
}

func TestCreateReportEncryptsSensitiveFields(t *testing.T) {
	svc, db := newReportTestService(t, "report_create", nil)

	report, err := svc.CreateReport(validReportInput())
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	var stored models.ScammerReport
	if err := db.First(&stored, report.ID).Error; err != nil {
		t.Fatalf("load report failed: %v", err)
	}
	if stored.NameEncrypted == "" || strings.Contains(stored.NameEncrypted, "김사기") {
		t.Fatalf("name not encrypted: %q", stored.NameEncrypted)
	}
	if strings.Contains(stored.PhoneNumberEncrypted, "9999") {
		t.Fatalf("phone not encrypted: %q", stored.PhoneNumberEncrypted)
	}
	if stored.ReporterAuthUserID == nil || *stored.ReporterAuthUserID != "auth-1" {
		t.Fatalf("unexpected reporter: %v", stored.ReporterAuthUserID)
	}

	view, err := svc.GetReport(report.ID)
	if err != nil {
		t.Fatalf("get report failed: %v", err)
	}
	if view.Name != "김사기" {
		t.Fatalf("decrypt name mismatch: %q", view.Name)
	}
	// 电话在加密前仅保留数字
	if view.PhoneNumber != "01099998888" {
		t.Fatalf("decrypt phone mismatch: %q", view.PhoneNumber)
	}
	if view.AccountNumber != "110-123-456789" {
		t.Fatalf("decrypt account mismatch: %q", view.AccountNumber)
	}
}

func TestCreateReportAnonymous(t *testing.T) {
	svc, _ := newReportTestService(t, "report_anon", nil)

	input := validReportInput()
	input.ReporterAuthUserID = ""
	report, err := svc.CreateReport(input)
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}
	if report.ReporterAuthUserID != nil {
		t.Fatalf("expected nil reporter for anonymous report")
	}
}

func TestCreateReportValidation(t *testing.T) {
	svc, _ := newReportTestService(t, "report_validate", nil)

	input := validReportInput()
	input.Category = ""
	if _, err := svc.CreateReport(input); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired, got: %v", err)
	}

	input = validReportInput()
	input.PerpetratorIdentified = nil
	if _, err := svc.CreateReport(input); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired for nil bool, got: %v", err)
	}
}

func TestCreateReportRequiresCipher(t *testing.T) {
	svc, _ := newReportTestService(t, "report_no_cipher", nil)
	svc.cipher = nil

	if _, err := svc.CreateReport(validReportInput()); !errors.Is(err, ErrEncryptionNotConfigured) {
		t.Fatalf("expected ErrEncryptionNotConfigured, got: %v", err)
	}
}

func TestCreateReportMarksPendingAudio(t *testing.T) {
	svc, _ := newReportTestService(t, "report_audio_pending", nil)

	input := validReportInput()
	input.AudioURL = "https://cdn.example.com/rec.wav"
	report, err := svc.CreateReport(input)
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}
	if report.AudioAnalysisStatus != constants.AudioAnalysisStatusPending {
		t.Fatalf("expected pending status, got: %q", report.AudioAnalysisStatus)
	}
}

func TestScanPhishingKeywords(t *testing.T) {
	detected := scanPhishingKeywords("서울중앙지검 검찰 수사관입니다. 명의도용 사건에 연루되어 계좌이체가 필요합니다.")
	want := []string{"검찰", "수사관", "명의도용", "계좌이체", "사건", "연루"}
	if len(detected) != len(want) {
		t.Fatalf("expected %d keywords, got %v", len(want), detected)
	}
	for i, kw := range want {
		if detected[i] != kw {
			t.Fatalf("keyword %d: expected %q, got %q", i, kw, detected[i])
		}
	}

	if got := scanPhishingKeywords("안녕하세요 내일 점심 어때요"); got != nil {
		t.Fatalf("expected no keywords, got %v", got)
	}
}

func TestAnalyzeAudioDetectsPhishing(t *testing.T) {
	audioServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fake-wav-bytes"))
	}))
	defer audioServer.Close()

	tr := &fakeTranscriber{transcript: "금융감독원 직원입니다. 대출 상환을 위해 송금해 주세요."}
	svc, db := newReportTestService(t, "report_analyze_detect", tr)

	input := validReportInput()
	input.AudioURL = audioServer.URL + "/rec.wav"
	report, err := svc.CreateReport(input)
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if err := svc.AnalyzeAudio(context.Background(), report.ID); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if string(tr.received) != "fake-wav-bytes" {
		t.Fatalf("transcriber got unexpected audio: %q", tr.received)
	}

	var stored models.ScammerReport
	if err := db.First(&stored, report.ID).Error; err != nil {
		t.Fatalf("load report failed: %v", err)
	}
	if stored.AudioAnalysisStatus != constants.AudioAnalysisStatusDetected {
		t.Fatalf("expected detected status, got: %q", stored.AudioAnalysisStatus)
	}
	if stored.DetectedKeywords != "금융감독원,대출,상환,송금" {
		t.Fatalf("unexpected keywords: %q", stored.DetectedKeywords)
	}
	if stored.AudioTranscript == "" {
		t.Fatalf("expected transcript stored")
	}
}

func TestAnalyzeAudioCleanTranscript(t *testing.T) {
	audioServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("audio"))
	}))
	defer audioServer.Close()

	tr := &fakeTranscriber{transcript: "안녕하세요 택배 기사입니다"}
	svc, db := newReportTestService(t, "report_analyze_clean", tr)

	input := validReportInput()
	input.AudioURL = audioServer.URL
	report, err := svc.CreateReport(input)
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if err := svc.AnalyzeAudio(context.Background(), report.ID); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var stored models.ScammerReport
	if err := db.First(&stored, report.ID).Error; err != nil {
		t.Fatalf("load report failed: %v", err)
	}
	if stored.AudioAnalysisStatus != constants.AudioAnalysisStatusDone {
		t.Fatalf("expected done status, got: %q", stored.AudioAnalysisStatus)
	}
	if stored.DetectedKeywords != "" {
		t.Fatalf("expected no keywords, got %q", stored.DetectedKeywords)
	}
}

func TestAnalyzeAudioMarksFailure(t *testing.T) {
	audioServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer audioServer.Close()

	tr := &fakeTranscriber{}
	svc, db := newReportTestService(t, "report_analyze_fail", tr)

	input := validReportInput()
	input.AudioURL = audioServer.URL + "/missing.wav"
	report, err := svc.CreateReport(input)
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if err := svc.AnalyzeAudio(context.Background(), report.ID); !errors.Is(err, ErrAudioAnalysisFailed) {
		t.Fatalf("expected ErrAudioAnalysisFailed, got: %v", err)
	}

	var stored models.ScammerReport
	if err := db.First(&stored, report.ID).Error; err != nil {
		t.Fatalf("load report failed: %v", err)
	}
	if stored.AudioAnalysisStatus != constants.AudioAnalysisStatusFailed {
		t.Fatalf("expected failed status, got: %q", stored.AudioAnalysisStatus)
	}
}

func TestAnalyzeAudioUnknownReport(t *testing.T) {
	svc, _ := newReportTestService(t, "report_analyze_missing", &fakeTranscriber{})

	if err := svc.AnalyzeAudio(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestListReportsFilterAndDecrypt(t *testing.T) {
	svc, _ := newReportTestService(t, "report_list", nil)

	first := validReportInput()
	if _, err := svc.CreateReport(first); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second := validReportInput()
	second.Category = "중고거래 사기"
	second.Name = "박사기"
	if _, err := svc.CreateReport(second); err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	views, total, err := svc.ListReports(repository.ScammerReportListFilter{Page: 1, PageSize: 10, Category: "중고거래 사기"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("expected 1 report, got total=%d len=%d", total, len(views))
	}
	if views[0].Name != "박사기" {
		t.Fatalf("expected decrypted name, got %q", views[0].Name)
	}
}
