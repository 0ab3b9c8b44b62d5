package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/credittalk/api/internal/constants"
	"github.com/credittalk/api/internal/encryption"
	"github.com/credittalk/api/internal/i18n"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/queue"
	"github.com/credittalk/api/internal/repository"
	"github.com/credittalk/api/internal/stt"
)

// phishingKeywords 录音转写中命中即判定疑似钓鱼的关键词
var phishingKeywords = []string{
	"검찰", "경찰", "수사관", "금융감독원", "금감원",
	"대출", "상환", "명의도용", "계좌이체", "송금",
	"개인정보", "사건", "연루",
}

// ReportService 诈骗举报服务
type ReportService struct {
	reportRepo  repository.ScammerReportRepository
	cipher      *encryption.Cipher
	queueClient *queue.Client
	transcriber stt.Transcriber
	httpClient  *http.Client
}

// NewReportService 创建举报服务
func NewReportService(reportRepo repository.ScammerReportRepository, cipher *encryption.Cipher, queueClient *queue.Client, transcriber stt.Transcriber) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		cipher:      cipher,
		queueClient: queueClient,
		transcriber: transcriber,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateReportInput 创建举报入参
type CreateReportInput struct {
	ReporterAuthUserID    string
	Category              string
	ScamReportSource      string
	CompanyType           string
	Gender                string
	PerpetratorIdentified *bool
	AttemptedFraud        *bool
	Name                  string
	PhoneNumber           string
	AccountNumber         string
	SiteName              string
	ImpersonatedCompany   string
	DamageAmount          int64
	Description           string
	ClientIP              string
	AudioURL              string
}

// ReportView 解密后的举报视图
type ReportView struct {
	Report        *models.ScammerReport `json:"report"`
	Name          string                `json:"name"`
	PhoneNumber   string                `json:"phone_number"`
	AccountNumber string                `json:"account_number"`
}

// CreateReport 创建举报，敏感字段落库前加密
func (s *ReportService) CreateReport(input CreateReportInput) (*models.ScammerReport, error) {
	if strings.TrimSpace(input.Category) == "" ||
		strings.TrimSpace(input.ScamReportSource) == "" ||
		strings.TrimSpace(input.CompanyType) == "" ||
		strings.TrimSpace(input.Gender) == "" ||
		input.PerpetratorIdentified == nil ||
		input.AttemptedFraud == nil {
		return nil, ErrFieldsRequired
	}
	if s.cipher == nil {
		return nil, ErrEncryptionNotConfigured
	}

	nameEnc, err := s.cipher.Encrypt(strings.TrimSpace(input.Name))
	if err != nil {
		return nil, err
	}
	phoneEnc, err := s.cipher.Encrypt(digitsOnly(input.PhoneNumber))
	if err != nil {
		return nil, err
	}
	accountEnc, err := s.cipher.Encrypt(strings.TrimSpace(input.AccountNumber))
	if err != nil {
		return nil, err
	}

	report := &models.ScammerReport{
		Category:               strings.TrimSpace(input.Category),
		ScamReportSource:       strings.TrimSpace(input.ScamReportSource),
		CompanyType:            strings.TrimSpace(input.CompanyType),
		Gender:                 strings.TrimSpace(input.Gender),
		PerpetratorIdentified:  *input.PerpetratorIdentified,
		AttemptedFraud:         *input.AttemptedFraud,
		NameEncrypted:          nameEnc,
		PhoneNumberEncrypted:   phoneEnc,
		AccountNumberEncrypted: accountEnc,
		SiteName:               strings.TrimSpace(input.SiteName),
		ImpersonatedCompany:    strings.TrimSpace(input.ImpersonatedCompany),
		DamageAmount:           input.DamageAmount,
		Description:            strings.TrimSpace(input.Description),
		ClientIP:               strings.TrimSpace(input.ClientIP),
		AudioURL:               strings.TrimSpace(input.AudioURL),
	}
	if reporter := strings.TrimSpace(input.ReporterAuthUserID); reporter != "" {
		report.ReporterAuthUserID = &reporter
	}
	if report.AudioURL != "" {
		report.AudioAnalysisStatus = constants.AudioAnalysisStatusPending
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	if report.AudioURL != "" && s.queueClient != nil && s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueAudioAnalyze(queue.AudioAnalyzePayload{ReportID: report.ID}, 10*time.Second); err != nil {
			logger.Warnw("录音分析任务入队失败", "report_id", report.ID, "error", err)
		}
	}
	return report, nil
}

// GetMyReports 获取当前用户的举报记录（解密敏感字段）
func (s *ReportService) GetMyReports(authUserID string) ([]ReportView, error) {
	if strings.TrimSpace(authUserID) == "" {
		return nil, ErrNotFound
	}
	reports, err := s.reportRepo.ListByReporter(authUserID)
	if err != nil {
		return nil, err
	}
	views := make([]ReportView, 0, len(reports))
	for i := range reports {
		views = append(views, s.decryptView(&reports[i]))
	}
	return views, nil
}

// GetReport 按 ID 获取举报详情（解密敏感字段）
func (s *ReportService) GetReport(id uint) (*ReportView, error) {
	report, err := s.reportRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	view := s.decryptView(report)
	return &view, nil
}

// ListReports 管理端分页查询举报
func (s *ReportService) ListReports(filter repository.ScammerReportListFilter) ([]ReportView, int64, error) {
	reports, total, err := s.reportRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]ReportView, 0, len(reports))
	for i := range reports {
		views = append(views, s.decryptView(&reports[i]))
	}
	return views, total, nil
}

// AnalyzeAudio 下载举报录音并转写，扫描钓鱼关键词后落库
func (s *ReportService) AnalyzeAudio(ctx context.Context, reportID uint) error {
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return ErrNotFound
	}
	if strings.TrimSpace(report.AudioURL) == "" {
		return nil
	}
	if s.transcriber == nil {
		return s.markAnalysisFailed(report, fmt.Errorf("%w: transcriber not configured", ErrAudioAnalysisFailed))
	}

	audio, err := s.fetchAudio(ctx, report.AudioURL)
	if err != nil {
		return s.markAnalysisFailed(report, err)
	}
	transcript, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return s.markAnalysisFailed(report, fmt.Errorf("%w: %v", ErrAudioAnalysisFailed, err))
	}

	detected := scanPhishingKeywords(transcript)
	report.AudioTranscript = transcript
	report.DetectedKeywords = strings.Join(detected, ",")
	if len(detected) > 0 {
		report.AudioAnalysisStatus = constants.AudioAnalysisStatusDetected
	} else {
		report.AudioAnalysisStatus = constants.AudioAnalysisStatusDone
	}
	return s.reportRepo.Update(report)
}

func (s *ReportService) markAnalysisFailed(report *models.ScammerReport, cause error) error {
	report.AudioAnalysisStatus = constants.AudioAnalysisStatusFailed
	if err := s.reportRepo.Update(report); err != nil {
		logger.Errorw("更新录音分析状态失败", "report_id", report.ID, "error", err)
	}
	return cause
}

func (s *ReportService) fetchAudio(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioAnalysisFailed, err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioAnalysisFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: audio fetch status %d", ErrAudioAnalysisFailed, resp.StatusCode)
	}
	// 录音上限 20MB
	body, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioAnalysisFailed, err)
	}
	return body, nil
}

func (s *ReportService) decryptView(report *models.ScammerReport) ReportView {
	return ReportView{
		Report:        report,
		Name:          s.decryptField(report.ID, report.NameEncrypted),
		PhoneNumber:   s.decryptField(report.ID, report.PhoneNumberEncrypted),
		AccountNumber: s.decryptField(report.ID, report.AccountNumberEncrypted),
	}
}

func (s *ReportService) decryptField(reportID uint, ciphertext string) string {
	if ciphertext == "" {
		return ""
	}
	if s.cipher == nil {
		return i18n.T(constants.LocaleKoKR, "error.decrypt_failed")
	}
	plain, err := s.cipher.Decrypt(ciphertext)
	if err != nil {
		logger.Warnw("举报敏感字段解密失败", "report_id", reportID, "error", err)
		return i18n.T(constants.LocaleKoKR, "error.decrypt_failed")
	}
	return plain
}

func scanPhishingKeywords(transcript string) []string {
	var detected []string
	for _, kw := range phishingKeywords {
		if strings.Contains(transcript, kw) {
			detected = append(detected, kw)
		}
	}
	return detected
}
