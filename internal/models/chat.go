package models

import "time"

// ChatRoom 聊天室表
type ChatRoom struct {
	ID        uint      `gorm:"primarykey" json:"id"`          // 主键
	Name      string    `gorm:"default:''" json:"name"`        // 聊天室名称
	IsDirect  bool      `gorm:"not null;index" json:"is_direct"` // 是否一对一私聊
	CreatedAt time.Time `gorm:"index" json:"created_at"`       // 创建时间
}

// TableName 指定表名
func (ChatRoom) TableName() string {
	return "chat_rooms"
}

// ChatParticipant 聊天室成员表
type ChatParticipant struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                           // 主键
	RoomID     uint      `gorm:"index:idx_chat_room_user,unique;not null" json:"room_id"`        // 聊天室ID
	AuthUserID string    `gorm:"index:idx_chat_room_user,unique;not null" json:"auth_user_id"`   // 成员身份ID
	JoinedAt   time.Time `gorm:"index" json:"joined_at"`                                         // 加入时间
}

// TableName 指定表名
func (ChatParticipant) TableName() string {
	return "chat_participants"
}
