package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/push"
	"github.com/credittalk/api/internal/queue"
	"github.com/credittalk/api/internal/repository"
	"github.com/credittalk/api/internal/sms"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakePushSender struct {
	sent       []string
	messages   []push.Message
	errByToken map[string]error
}

func (f *fakePushSender) Send(ctx context.Context, token string, msg push.Message) error {
	if err, ok := f.errByToken[token]; ok {
		return err
	}
	f.sent = append(f.sent, token)
	f.messages = append(f.messages, msg)
	return nil
}

func newNotificationTestService(t *testing.T, name string, pushSender push.Sender, smsSender *fakeSMS) (*NotificationService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.DevicePushToken{}, &models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	var sender sms.Sender
	if smsSender != nil {
		sender = smsSender
	}
	svc := NewNotificationService(repository.NewPushTokenRepository(db), repository.NewAdminRepository(db), pushSender, sender)
	return svc, db
}

func seedPushToken(t *testing.T, db *gorm.DB, authUserID, token string, active bool) {
	t.Helper()
	row := models.DevicePushToken{AuthUserID: authUserID, Token: token, Platform: "android", IsActive: active}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create push token failed: %v", err)
	}
}

func TestHandleNewPostBroadcast(t *testing.T) {
	sender := &fakePushSender{errByToken: map[string]error{"tok-bad": push.ErrTokenInvalid}}
	svc, db := newNotificationTestService(t, "notify_post", sender, nil)

	seedPushToken(t, db, "auth-author", "tok-author", true)
	seedPushToken(t, db, "auth-1", "tok-1", true)
	seedPushToken(t, db, "auth-2", "tok-bad", true)
	seedPushToken(t, db, "auth-3", "tok-off", false)

	err := svc.HandleNewPost(context.Background(), queue.PushNewPostPayload{
		PostID:           7,
		Title:            "새 글 제목",
		AuthorAuthUserID: "auth-author",
	})
	if err != nil {
		t.Fatalf("handle new post failed: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "tok-1" {
		t.Fatalf("unexpected recipients: %v", sender.sent)
	}
	if sender.messages[0].Data["post_id"] != "7" {
		t.Fatalf("unexpected message data: %+v", sender.messages[0].Data)
	}

	// 无效令牌应被停用
	var bad models.DevicePushToken
	if err := db.Where("token = ?", "tok-bad").First(&bad).Error; err != nil {
		t.Fatalf("load token failed: %v", err)
	}
	if bad.IsActive {
		t.Fatalf("expected invalid token to be deactivated")
	}
}

func TestHandleNewCommentSkipsSelf(t *testing.T) {
	sender := &fakePushSender{}
	svc, db := newNotificationTestService(t, "notify_comment", sender, nil)
	seedPushToken(t, db, "auth-author", "tok-author", true)

	err := svc.HandleNewComment(context.Background(), queue.PushNewCommentPayload{
		PostID:               3,
		CommentPreview:       "댓글 내용",
		PostAuthorAuthUserID: "auth-author",
		CommenterAuthUserID:  "auth-author",
	})
	if err != nil {
		t.Fatalf("handle new comment failed: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no push for self comment, got: %v", sender.sent)
	}

	err = svc.HandleNewComment(context.Background(), queue.PushNewCommentPayload{
		PostID:               3,
		CommentPreview:       "댓글 내용",
		PostAuthorAuthUserID: "auth-author",
		CommenterAuthUserID:  "auth-other",
	})
	if err != nil {
		t.Fatalf("handle new comment failed: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "tok-author" {
		t.Fatalf("unexpected recipients: %v", sender.sent)
	}
}

func TestHandleChatMessage(t *testing.T) {
	sender := &fakePushSender{}
	svc, db := newNotificationTestService(t, "notify_chat", sender, nil)
	seedPushToken(t, db, "auth-receiver", "tok-receiver", true)

	err := svc.HandleChatMessage(context.Background(), queue.PushChatMessagePayload{
		RoomID:             12,
		SenderAuthUserID:   "auth-sender",
		SenderNickname:     "  ",
		MessagePreview:     "안녕하세요",
		ReceiverAuthUserID: "auth-receiver",
	})
	if err != nil {
		t.Fatalf("handle chat message failed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one push, got: %v", sender.sent)
	}
	if sender.messages[0].Title != "새 메시지" {
		t.Fatalf("expected fallback title, got %q", sender.messages[0].Title)
	}
	if sender.messages[0].Data["room_id"] != "12" {
		t.Fatalf("unexpected message data: %+v", sender.messages[0].Data)
	}

	// 接收方没有有效令牌时静默返回
	err = svc.HandleChatMessage(context.Background(), queue.PushChatMessagePayload{
		RoomID:             12,
		MessagePreview:     "안녕하세요",
		ReceiverAuthUserID: "auth-ghost",
	})
	if err != nil {
		t.Fatalf("handle chat message failed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected no extra push, got: %v", sender.sent)
	}
}

func TestHandleHelpdeskSMS(t *testing.T) {
	smsSender := &fakeSMS{}
	svc, db := newNotificationTestService(t, "notify_sms", nil, smsSender)

	admins := []models.Admin{
		{Username: "admin1", PasswordHash: "x", Status: "active", PhoneNumber: "01011112222"},
		{Username: "admin2", PasswordHash: "x", Status: "active"},
		{Username: "admin3", PasswordHash: "x", Status: "disabled", PhoneNumber: "01033334444"},
	}
	for i := range admins {
		if err := db.Create(&admins[i]).Error; err != nil {
			t.Fatalf("create admin failed: %v", err)
		}
	}

	err := svc.HandleHelpdeskSMS(context.Background(), queue.SMSHelpdeskNotifyPayload{
		QuestionID: 1,
		Title:      "환불 문의",
	})
	if err != nil {
		t.Fatalf("handle helpdesk sms failed: %v", err)
	}
	if len(smsSender.sent) != 1 || smsSender.lastTo != "01011112222" {
		t.Fatalf("unexpected sms delivery: sent=%v to=%q", smsSender.sent, smsSender.lastTo)
	}
	if smsSender.sent[0] != "[CreditTalk] 새 문의가 접수되었습니다: 환불 문의" {
		t.Fatalf("unexpected sms content: %q", smsSender.sent[0])
	}
}

func TestSavePushToken(t *testing.T) {
	svc, db := newNotificationTestService(t, "notify_save", nil, nil)

	if err := svc.SavePushToken("  ", "tok-1", "android"); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired, got: %v", err)
	}
	if err := svc.SavePushToken("auth-1", "tok-1", "Android"); err != nil {
		t.Fatalf("save push token failed: %v", err)
	}

	// 同一令牌换绑到另一个用户
	if err := svc.SavePushToken("auth-2", "tok-1", "ios"); err != nil {
		t.Fatalf("rebind push token failed: %v", err)
	}

	var rows []models.DevicePushToken
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("load tokens failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 token row, got %d", len(rows))
	}
	if rows[0].AuthUserID != "auth-2" || rows[0].Platform != "ios" || !rows[0].IsActive {
		t.Fatalf("unexpected token row: %+v", rows[0])
	}

	// 未知平台存空串
	if err := svc.SavePushToken("auth-3", "tok-2", "windows"); err != nil {
		t.Fatalf("save push token failed: %v", err)
	}
	var other models.DevicePushToken
	if err := db.Where("token = ?", "tok-2").First(&other).Error; err != nil {
		t.Fatalf("load token failed: %v", err)
	}
	if other.Platform != "" {
		t.Fatalf("expected empty platform for unknown value, got %q", other.Platform)
	}
}
