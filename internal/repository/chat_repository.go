package repository

import (
	"errors"

	"github.com/credittalk/api/internal/models"

	"gorm.io/gorm"
)

// ChatRepository 聊天数据访问接口
type ChatRepository interface {
	CreateRoom(room *models.ChatRoom) error
	DeleteRoom(roomID uint) error
	AddParticipants(participants []models.ChatParticipant) error
	FindDirectRoom(userA, userB string) (*models.ChatRoom, error)
}

// GormChatRepository GORM 实现
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建聊天仓库
func NewChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// CreateRoom 创建聊天室
func (r *GormChatRepository) CreateRoom(room *models.ChatRoom) error {
	return r.db.Create(room).Error
}

// DeleteRoom 删除聊天室及其成员（成员插入失败时的补偿）
func (r *GormChatRepository) DeleteRoom(roomID uint) error {
	if roomID == 0 {
		return nil
	}
	if err := r.db.Where("room_id = ?", roomID).Delete(&models.ChatParticipant{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.ChatRoom{}, roomID).Error
}

// AddParticipants 批量添加聊天室成员
func (r *GormChatRepository) AddParticipants(participants []models.ChatParticipant) error {
	if len(participants) == 0 {
		return nil
	}
	return r.db.Create(&participants).Error
}

// FindDirectRoom 查找两名用户之间已存在的私聊房间
func (r *GormChatRepository) FindDirectRoom(userA, userB string) (*models.ChatRoom, error) {
	var roomIDs []uint
	err := r.db.Model(&models.ChatParticipant{}).
		Select("room_id").
		Where("auth_user_id IN ?", []string{userA, userB}).
		Group("room_id").
		Having("COUNT(DISTINCT auth_user_id) = 2").
		Find(&roomIDs).Error
	if err != nil {
		return nil, err
	}
	if len(roomIDs) == 0 {
		return nil, nil
	}

	var room models.ChatRoom
	err = r.db.Where("id IN ? AND is_direct = ?", roomIDs, true).
		Order("id ASC").
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}
