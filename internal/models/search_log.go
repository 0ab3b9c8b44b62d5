package models

import "time"

// SearchLog 搜索记录表
type SearchLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`               // 主键
	AuthUserID string    `gorm:"index;not null" json:"auth_user_id"` // 搜索用户身份ID
	SearchTerm string    `gorm:"index;not null" json:"search_term"`  // 搜索词
	CreatedAt  time.Time `gorm:"index" json:"created_at"`            // 创建时间
}

// TableName 指定表名
func (SearchLog) TableName() string {
	return "search_logs"
}
