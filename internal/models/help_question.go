package models

import (
	"time"

	"gorm.io/gorm"
)

// HelpQuestion 帮助台提问表
type HelpQuestion struct {
	ID         uint           `gorm:"primarykey" json:"id"`               // 主键
	AuthUserID string         `gorm:"index;not null" json:"auth_user_id"` // 提问用户身份ID
	Title      string         `gorm:"not null" json:"title"`              // 标题
	Content    string         `gorm:"type:text" json:"content"`           // 内容
	Status     string         `gorm:"default:'open';index" json:"status"` // 状态（open/answered）
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`            // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`            // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                     // 软删除时间
}

// TableName 指定表名
func (HelpQuestion) TableName() string {
	return "help_questions"
}
