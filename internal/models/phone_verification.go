package models

import "time"

// PhoneVerification 手机验证码记录
// 同一手机号最多只保留一条有效记录，重发时先删除旧记录。
// 过期与作废采用物理删除，不使用软删除。
type PhoneVerification struct {
	ID        uint       `gorm:"primarykey" json:"id"`          // 主键
	Phone     string     `gorm:"index;not null" json:"phone"`   // 手机号（本地格式）
	HashedOTP string     `gorm:"not null" json:"-"`             // 验证码 SHA-256 摘要（十六进制小写）
	ExpiresAt time.Time  `gorm:"index" json:"expires_at"`       // 过期时间
	UsedAt    *time.Time `gorm:"index" json:"used_at"`          // 消费时间（单次使用）
	CreatedAt time.Time  `gorm:"index" json:"created_at"`       // 创建时间
}

// TableName 指定表名
func (PhoneVerification) TableName() string {
	return "phone_verifications"
}
