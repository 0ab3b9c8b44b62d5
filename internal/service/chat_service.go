package service

import (
	"strings"

	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/repository"
)

// ChatService 聊天室服务
type ChatService struct {
	chatRepo    repository.ChatRepository
	profileRepo repository.UserProfileRepository
}

// NewChatService 创建聊天室服务
func NewChatService(chatRepo repository.ChatRepository, profileRepo repository.UserProfileRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo, profileRepo: profileRepo}
}

// CreateDirectRoom 创建或复用两人私聊房间
func (s *ChatService) CreateDirectRoom(creatorAuthUserID, partnerAuthUserID string) (*models.ChatRoom, bool, error) {
	creatorAuthUserID = strings.TrimSpace(creatorAuthUserID)
	partnerAuthUserID = strings.TrimSpace(partnerAuthUserID)
	if creatorAuthUserID == "" || partnerAuthUserID == "" {
		return nil, false, ErrFieldsRequired
	}
	if creatorAuthUserID == partnerAuthUserID {
		return nil, false, ErrChatWithSelf
	}

	partner, err := s.profileRepo.GetByAuthUserID(partnerAuthUserID)
	if err != nil {
		return nil, false, err
	}
	if partner == nil {
		return nil, false, ErrNotFound
	}

	existing, err := s.chatRepo.FindDirectRoom(creatorAuthUserID, partnerAuthUserID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	room := &models.ChatRoom{IsDirect: true}
	if err := s.chatRepo.CreateRoom(room); err != nil {
		return nil, false, err
	}
	participants := []models.ChatParticipant{
		{RoomID: room.ID, AuthUserID: creatorAuthUserID},
		{RoomID: room.ID, AuthUserID: partnerAuthUserID},
	}
	if err := s.chatRepo.AddParticipants(participants); err != nil {
		if delErr := s.chatRepo.DeleteRoom(room.ID); delErr != nil {
			logger.Errorw("聊天房间回滚失败", "room_id", room.ID, "error", delErr)
		}
		return nil, false, err
	}
	return room, true, nil
}
