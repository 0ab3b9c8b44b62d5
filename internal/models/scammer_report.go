package models

import (
	"time"

	"gorm.io/gorm"
)

// ScammerReport 诈骗举报记录
// 姓名、电话、账号三个敏感字段以 AES-256-GCM 密文存储。
type ScammerReport struct {
	ID                     uint           `gorm:"primarykey" json:"id"`                                 // 主键
	ReporterAuthUserID     *string        `gorm:"index" json:"reporter_auth_user_id"`                   // 举报人身份ID（可匿名）
	Category               string         `gorm:"index;not null" json:"category"`                       // 诈骗类型
	ScamReportSource       string         `gorm:"not null" json:"scam_report_source"`                   // 举报来源
	CompanyType            string         `gorm:"not null" json:"company_type"`                         // 涉事主体类型
	Gender                 string         `gorm:"not null" json:"gender"`                               // 嫌疑人性别
	PerpetratorIdentified  bool           `gorm:"not null;default:false" json:"perpetrator_identified"` // 嫌疑人是否已确认
	AttemptedFraud         bool           `gorm:"not null;default:false" json:"attempted_fraud"`        // 是否未遂
	NameEncrypted          string         `gorm:"column:name_encrypted" json:"-"`                       // 嫌疑人姓名（密文）
	PhoneNumberEncrypted   string         `gorm:"column:phone_number_encrypted" json:"-"`               // 嫌疑人电话（密文）
	AccountNumberEncrypted string         `gorm:"column:account_number_encrypted" json:"-"`             // 收款账号（密文）
	SiteName               string         `gorm:"default:''" json:"site_name"`                          // 涉事网站
	ImpersonatedCompany    string         `gorm:"default:''" json:"impersonated_company"`               // 被冒充机构
	DamageAmount           int64          `gorm:"default:0" json:"damage_amount"`                       // 受损金额（韩元）
	Description            string         `gorm:"type:text" json:"description"`                         // 详细描述
	ClientIP               string         `gorm:"default:''" json:"-"`                                  // 举报时客户端 IP
	AudioURL               string         `gorm:"default:''" json:"audio_url"`                          // 通话录音 URL
	AudioAnalysisStatus    string         `gorm:"default:''" json:"audio_analysis_status"`              // 录音分析状态
	AudioTranscript        string         `gorm:"type:text" json:"audio_transcript"`                    // 录音转写文本
	DetectedKeywords       string         `gorm:"default:''" json:"detected_keywords"`                  // 命中的钓鱼关键词（逗号分隔）
	CreatedAt              time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt              time.Time      `gorm:"index" json:"updated_at"`                              // 更新时间
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (ScammerReport) TableName() string {
	return "scammer_reports"
}
