package admin

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/credittalk/api/internal/http/handlers/shared"
	"github.com/credittalk/api/internal/http/response"
	"github.com/credittalk/api/internal/i18n"
	"github.com/credittalk/api/internal/queue"
	"github.com/credittalk/api/internal/repository"
	"github.com/credittalk/api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListReports 分页查询举报列表（含解密后的敏感字段）
func (h *Handler) ListReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ScammerReportListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
	}
	if from, ok := parseQueryTime(c.Query("created_from")); ok {
		filter.CreatedFrom = &from
	}
	if to, ok := parseQueryTime(c.Query("created_to")); ok {
		filter.CreatedTo = &to
	}

	views, total, err := h.ReportService.ListReports(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.report_fetch_failed", err)
		return
	}

	items := make([]gin.H, 0, len(views))
	for _, v := range views {
		items = append(items, adminReportJSON(v))
	}
	response.OK(c, gin.H{
		"reports": items,
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetReport 查询单条举报详情
func (h *Handler) GetReport(c *gin.Context) {
	id, ok := paramReportID(c)
	if !ok {
		return
	}

	view, err := h.ReportService.GetReport(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.report_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.report_fetch_failed", err)
		return
	}

	response.OK(c, adminReportJSON(*view))
}

// AnalyzeReportAudio 重新触发举报录音分析
func (h *Handler) AnalyzeReportAudio(c *gin.Context) {
	id, ok := paramReportID(c)
	if !ok {
		return
	}

	if h.QueueClient != nil && h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueAudioAnalyze(queue.AudioAnalyzePayload{ReportID: id}, 0); err != nil {
			respondError(c, response.CodeInternal, "error.audio_analysis_failed", err)
			return
		}
		response.OK(c, gin.H{"queued": true})
		return
	}

	if err := h.ReportService.AnalyzeAudio(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.report_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.audio_analysis_failed", err)
		return
	}
	response.Success(c, i18n.T(i18n.ResolveLocale(c), "message.audio_analysis_done"))
}

func paramReportID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

func parseQueryTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func adminReportJSON(v service.ReportView) gin.H {
	item := gin.H{
		"id":                     v.Report.ID,
		"category":               v.Report.Category,
		"scam_report_source":     v.Report.ScamReportSource,
		"company_type":           v.Report.CompanyType,
		"gender":                 v.Report.Gender,
		"perpetrator_identified": v.Report.PerpetratorIdentified,
		"attempted_fraud":        v.Report.AttemptedFraud,
		"name":                   v.Name,
		"phone_number":           v.PhoneNumber,
		"account_number":         v.AccountNumber,
		"site_name":              v.Report.SiteName,
		"impersonated_company":   v.Report.ImpersonatedCompany,
		"damage_amount":          v.Report.DamageAmount,
		"description":            v.Report.Description,
		"client_ip":              v.Report.ClientIP,
		"audio_url":              v.Report.AudioURL,
		"audio_analysis_status":  v.Report.AudioAnalysisStatus,
		"audio_transcript":       v.Report.AudioTranscript,
		"detected_keywords":      v.Report.DetectedKeywords,
		"created_at":             v.Report.CreatedAt,
		"updated_at":             v.Report.UpdatedAt,
	}
	if v.Report.ReporterAuthUserID != nil {
		item["reporter_auth_user_id"] = *v.Report.ReporterAuthUserID
	}
	return item
}
