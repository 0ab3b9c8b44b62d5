package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile 用户资料表（身份服务账号的业务侧档案）
type UserProfile struct {
	ID          uint           `gorm:"primarykey" json:"id"`                     // 主键
	AuthUserID  string         `gorm:"uniqueIndex;not null" json:"auth_user_id"` // 身份服务用户ID（UUID）
	Name        string         `gorm:"not null" json:"name"`                     // 真实姓名
	Nickname    string         `gorm:"uniqueIndex;not null" json:"nickname"`     // 昵称
	PhoneNumber string         `gorm:"index;not null" json:"phone_number"`       // 手机号
	JobType     string         `gorm:"default:''" json:"job_type"`               // 职业类型
	NaverID     *string        `gorm:"index" json:"-"`                           // Naver 绑定 ID
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                  // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profiles"
}
