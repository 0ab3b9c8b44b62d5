package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/credittalk/api/internal/constants"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/push"
	"github.com/credittalk/api/internal/queue"
	"github.com/credittalk/api/internal/repository"
	"github.com/credittalk/api/internal/sms"
)

// NotificationService 推送与短信通知服务（由异步任务消费端调用）
type NotificationService struct {
	pushTokenRepo repository.PushTokenRepository
	adminRepo     repository.AdminRepository
	pushSender    push.Sender
	smsSender     sms.Sender
}

// NewNotificationService 创建通知服务
func NewNotificationService(pushTokenRepo repository.PushTokenRepository, adminRepo repository.AdminRepository, pushSender push.Sender, smsSender sms.Sender) *NotificationService {
	return &NotificationService{
		pushTokenRepo: pushTokenRepo,
		adminRepo:     adminRepo,
		pushSender:    pushSender,
		smsSender:     smsSender,
	}
}

// HandleNewPost 新帖发布后向作者以外的活跃设备广播
func (s *NotificationService) HandleNewPost(ctx context.Context, payload queue.PushNewPostPayload) error {
	if s.pushSender == nil {
		return nil
	}
	tokens, err := s.pushTokenRepo.ListActive(payload.AuthorAuthUserID)
	if err != nil {
		return err
	}
	msg := push.Message{
		Title: "새 글이 등록되었습니다",
		Body:  payload.Title,
		Data: map[string]string{
			"type":    "new_post",
			"post_id": strconv.FormatUint(uint64(payload.PostID), 10),
		},
	}
	var invalid []string
	for _, t := range tokens {
		if err := s.pushSender.Send(ctx, t.Token, msg); err != nil {
			if errors.Is(err, push.ErrTokenInvalid) {
				invalid = append(invalid, t.Token)
				continue
			}
			logger.Warnw("新帖推送失败", "auth_user_id", t.AuthUserID, "error", err)
		}
	}
	s.deactivateTokens(invalid)
	return nil
}

// HandleNewComment 新评论后推送给帖子作者
func (s *NotificationService) HandleNewComment(ctx context.Context, payload queue.PushNewCommentPayload) error {
	if s.pushSender == nil {
		return nil
	}
	// 自己评论自己的帖子不推
	if payload.PostAuthorAuthUserID == "" || payload.PostAuthorAuthUserID == payload.CommenterAuthUserID {
		return nil
	}
	token, err := s.pushTokenRepo.LatestActiveByUser(payload.PostAuthorAuthUserID)
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}
	msg := push.Message{
		Title: "새 댓글이 달렸습니다",
		Body:  payload.CommentPreview,
		Data: map[string]string{
			"type":    "new_comment",
			"post_id": strconv.FormatUint(uint64(payload.PostID), 10),
		},
	}
	if err := s.pushSender.Send(ctx, token.Token, msg); err != nil {
		if errors.Is(err, push.ErrTokenInvalid) {
			s.deactivateTokens([]string{token.Token})
			return nil
		}
		return err
	}
	return nil
}

// HandleChatMessage 聊天消息推送给接收方
func (s *NotificationService) HandleChatMessage(ctx context.Context, payload queue.PushChatMessagePayload) error {
	if s.pushSender == nil {
		return nil
	}
	token, err := s.pushTokenRepo.LatestActiveByUser(payload.ReceiverAuthUserID)
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}
	title := payload.SenderNickname
	if strings.TrimSpace(title) == "" {
		title = "새 메시지"
	}
	msg := push.Message{
		Title: title,
		Body:  payload.MessagePreview,
		Data: map[string]string{
			"type":    "chat_message",
			"room_id": strconv.FormatUint(uint64(payload.RoomID), 10),
		},
	}
	if err := s.pushSender.Send(ctx, token.Token, msg); err != nil {
		if errors.Is(err, push.ErrTokenInvalid) {
			s.deactivateTokens([]string{token.Token})
			return nil
		}
		return err
	}
	return nil
}

// HandleHelpdeskSMS 帮助台新提问短信通知值班管理员
func (s *NotificationService) HandleHelpdeskSMS(ctx context.Context, payload queue.SMSHelpdeskNotifyPayload) error {
	if s.smsSender == nil {
		return nil
	}
	phones, err := s.adminRepo.ListNotifiablePhones()
	if err != nil {
		return err
	}
	content := fmt.Sprintf("[CreditTalk] 새 문의가 접수되었습니다: %s", payload.Title)
	var lastErr error
	for _, phone := range phones {
		if err := s.smsSender.Send(ctx, phone, content); err != nil {
			logger.Warnw("帮助台短信通知失败", "phone", phone, "error", err)
			lastErr = err
		}
	}
	return lastErr
}

// SavePushToken 保存（或重新绑定）设备推送令牌
func (s *NotificationService) SavePushToken(authUserID, token, platform string) error {
	authUserID = strings.TrimSpace(authUserID)
	token = strings.TrimSpace(token)
	if authUserID == "" || token == "" {
		return ErrFieldsRequired
	}
	return s.pushTokenRepo.Upsert(&models.DevicePushToken{
		AuthUserID: authUserID,
		Token:      token,
		Platform:   normalizePushPlatform(platform),
		IsActive:   true,
	})
}

// normalizePushPlatform 平台只认 android/ios，其余存空串
func normalizePushPlatform(platform string) string {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case constants.PushPlatformAndroid:
		return constants.PushPlatformAndroid
	case constants.PushPlatformIOS:
		return constants.PushPlatformIOS
	default:
		return ""
	}
}

func (s *NotificationService) deactivateTokens(tokens []string) {
	if len(tokens) == 0 {
		return
	}
	if err := s.pushTokenRepo.Deactivate(tokens); err != nil {
		logger.Warnw("停用失效推送令牌失败", "count", len(tokens), "error", err)
	}
}
