package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newChatTestService(t *testing.T, name string) (*ChatService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ChatRoom{}, &models.ChatParticipant{}, &models.UserProfile{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewChatService(repository.NewChatRepository(db), repository.NewUserProfileRepository(db))
	return svc, db
}

func TestCreateDirectRoom(t *testing.T) {
	svc, db := newChatTestService(t, "chat_create")

	partner := models.UserProfile{AuthUserID: "auth-2", Name: "상대방", Nickname: "상대닉", PhoneNumber: "01022223333"}
	if err := db.Create(&partner).Error; err != nil {
		t.Fatalf("create partner failed: %v", err)
	}

	room, created, err := svc.CreateDirectRoom("auth-1", "auth-2")
	if err != nil {
		t.Fatalf("create room failed: %v", err)
	}
	if !created {
		t.Fatalf("expected new room")
	}
	if !room.IsDirect {
		t.Fatalf("expected direct room")
	}

	var count int64
	if err := db.Model(&models.ChatParticipant{}).Where("room_id = ?", room.ID).Count(&count).Error; err != nil {
		t.Fatalf("count participants failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 participants, got %d", count)
	}
}

func TestCreateDirectRoomReusesExisting(t *testing.T) {
	svc, db := newChatTestService(t, "chat_reuse")

	partner := models.UserProfile{AuthUserID: "auth-2", Name: "상대방", Nickname: "상대닉", PhoneNumber: "01022223333"}
	if err := db.Create(&partner).Error; err != nil {
		t.Fatalf("create partner failed: %v", err)
	}
	creator := models.UserProfile{AuthUserID: "auth-1", Name: "본인", Nickname: "본인닉", PhoneNumber: "01011112222"}
	if err := db.Create(&creator).Error; err != nil {
		t.Fatalf("create creator failed: %v", err)
	}

	first, created, err := svc.CreateDirectRoom("auth-1", "auth-2")
	if err != nil || !created {
		t.Fatalf("first create failed: created=%v err=%v", created, err)
	}

	// 任一方向再次发起都复用同一房间
	second, created, err := svc.CreateDirectRoom("auth-2", "auth-1")
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if created {
		t.Fatalf("expected room reuse")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same room, got %d and %d", first.ID, second.ID)
	}

	var rooms int64
	if err := db.Model(&models.ChatRoom{}).Count(&rooms).Error; err != nil {
		t.Fatalf("count rooms failed: %v", err)
	}
	if rooms != 1 {
		t.Fatalf("expected 1 room, got %d", rooms)
	}
}

func TestCreateDirectRoomValidation(t *testing.T) {
	svc, _ := newChatTestService(t, "chat_validate")

	if _, _, err := svc.CreateDirectRoom("auth-1", "auth-1"); !errors.Is(err, ErrChatWithSelf) {
		t.Fatalf("expected ErrChatWithSelf, got: %v", err)
	}
	if _, _, err := svc.CreateDirectRoom("", "auth-2"); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired, got: %v", err)
	}
	if _, _, err := svc.CreateDirectRoom("auth-1", "auth-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown partner, got: %v", err)
	}
}
