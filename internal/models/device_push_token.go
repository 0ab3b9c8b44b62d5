package models

import "time"

// DevicePushToken 设备推送令牌表
type DevicePushToken struct {
	ID         uint      `gorm:"primarykey" json:"id"`               // 主键
	AuthUserID string    `gorm:"index;not null" json:"auth_user_id"` // 用户身份ID
	Token      string    `gorm:"uniqueIndex;not null" json:"-"`      // FCM 设备令牌
	Platform   string    `gorm:"default:''" json:"platform"`         // 设备平台（android/ios）
	IsActive   bool      `gorm:"not null;index" json:"is_active"`    // 是否有效（推送失败后置为无效，写入方显式赋值）
	CreatedAt  time.Time `gorm:"index" json:"created_at"`            // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`            // 更新时间
}

// TableName 指定表名
func (DevicePushToken) TableName() string {
	return "device_push_tokens"
}
