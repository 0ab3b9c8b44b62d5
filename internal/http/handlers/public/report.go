package public

import (
	"github.com/credittalk/api/internal/http/response"
	"github.com/credittalk/api/internal/i18n"
	"github.com/credittalk/api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReportRequest 诈骗举报请求
type CreateReportRequest struct {
	Category              string `json:"category" binding:"required"`
	ScamReportSource      string `json:"scam_report_source" binding:"required"`
	CompanyType           string `json:"company_type" binding:"required"`
	Gender                string `json:"gender" binding:"required"`
	PerpetratorIdentified *bool  `json:"perpetrator_identified" binding:"required"`
	AttemptedFraud        *bool  `json:"attempted_fraud" binding:"required"`
	Name                  string `json:"name"`
	PhoneNumber           string `json:"phone_number"`
	AccountNumber         string `json:"account_number"`
	SiteName              string `json:"site_name"`
	ImpersonatedCompany   string `json:"impersonated_company"`
	DamageAmount          int64  `json:"damage_amount"`
	Description           string `json:"description"`
	AudioURL              string `json:"audio_url"`
}

// CreateReport 提交诈骗举报（可匿名）
func (h *Handler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.report_fields_required", err)
		return
	}

	input := service.CreateReportInput{
		ReporterAuthUserID:    optionalAuthUserID(c),
		Category:              req.Category,
		ScamReportSource:      req.ScamReportSource,
		CompanyType:           req.CompanyType,
		Gender:                req.Gender,
		PerpetratorIdentified: req.PerpetratorIdentified,
		AttemptedFraud:        req.AttemptedFraud,
		Name:                  req.Name,
		PhoneNumber:           req.PhoneNumber,
		AccountNumber:         req.AccountNumber,
		SiteName:              req.SiteName,
		ImpersonatedCompany:   req.ImpersonatedCompany,
		DamageAmount:          req.DamageAmount,
		Description:           req.Description,
		ClientIP:              c.ClientIP(),
		AudioURL:              req.AudioURL,
	}
	if _, err := h.ReportService.CreateReport(input); err != nil {
		respondReportCreateError(c, err)
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "message.report_created"))
}

// GetMyReports 查询当前用户的举报记录
func (h *Handler) GetMyReports(c *gin.Context) {
	authUserID, ok := getAuthUserID(c)
	if !ok {
		return
	}

	views, err := h.ReportService.GetMyReports(authUserID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	items := make([]gin.H, 0, len(views))
	for _, v := range views {
		items = append(items, reportViewJSON(v))
	}
	response.OK(c, gin.H{"reports": items})
}

func reportViewJSON(v service.ReportView) gin.H {
	return gin.H{
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
		"audio_url":              v.Report.AudioURL,
		"audio_analysis_status":  v.Report.AudioAnalysisStatus,
		"audio_transcript":       v.Report.AudioTranscript,
		"detected_keywords":      v.Report.DetectedKeywords,
		"created_at":             v.Report.CreatedAt,
	}
}
