package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/credittalk/api/internal/config"
	"github.com/credittalk/api/internal/identity"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeIdentity struct {
	nextID     string
	createErr  error
	created    []identity.CreateUserInput
	deleted    []string
	deleteErr  error
	usersByEml map[string]*identity.User
}

func (f *fakeIdentity) CreateUser(_ context.Context, input identity.CreateUserInput) (*identity.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, input)
	id := f.nextID
	if id == "" {
		id = fmt.Sprintf("auth-%d", len(f.created))
	}
	return &identity.User{ID: id, Email: input.Email}, nil
}

func (f *fakeIdentity) GetUser(_ context.Context, id string) (*identity.User, error) {
	for _, u := range f.usersByEml {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (f *fakeIdentity) DeleteUser(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeIdentity) FindUserByEmail(_ context.Context, email string) (*identity.User, error) {
	if u, ok := f.usersByEml[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, nil
}

type fakeSMS struct {
	sent    []string
	lastTo  string
	sendErr error
}

func (f *fakeSMS) Send(_ context.Context, to, content string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.lastTo = to
	f.sent = append(f.sent, content)
	return nil
}

// lastCode 从短信文案中截取六位验证码
func (f *fakeSMS) lastCode(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatalf("no sms sent")
	}
	content := f.sent[len(f.sent)-1]
	if len(content) < 6 {
		t.Fatalf("unexpected sms content: %s", content)
	}
	return content[len(content)-6:]
}

func newPhoneVerifyTestService(t *testing.T, name string, idSvc identity.Service, sender *fakeSMS) (*PhoneVerifyService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.PhoneVerification{}, &models.UserProfile{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{OTP: config.OTPConfig{ExpireMinutes: 5}}
	svc := NewPhoneVerifyService(cfg,
		repository.NewPhoneVerificationRepository(db),
		repository.NewUserProfileRepository(db),
		idSvc,
		sender,
	)
	return svc, db
}

func validSignupInput(phone, code string) SignupInput {
	return SignupInput{
		Phone:    phone,
		Code:     code,
		Email:    "tester@example.com",
		Password: "secret1234",
		Name:     "홍길동",
		Nickname: "테스터",
		JobType:  "office_worker",
	}
}

func TestIssueCodeRejectsInvalidPhone(t *testing.T) {
	sender := &fakeSMS{}
	svc, _ := newPhoneVerifyTestService(t, "otp_invalid_phone", &fakeIdentity{}, sender)

	if err := svc.IssueCode(context.Background(), "123"); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got: %v", err)
	}
	if err := svc.IssueCode(context.Background(), "010-1234-5678"); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone for dashed number, got: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no sms sent, got %d", len(sender.sent))
	}
}

func TestIssueCodeRejectsRegisteredPhone(t *testing.T) {
	sender := &fakeSMS{}
	svc, db := newPhoneVerifyTestService(t, "otp_phone_exists", &fakeIdentity{}, sender)

	profile := models.UserProfile{AuthUserID: "auth-1", Name: "기존", Nickname: "기존회원", PhoneNumber: "01012345678"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile failed: %v", err)
	}

	if err := svc.IssueCode(context.Background(), "01012345678"); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected ErrPhoneExists, got: %v", err)
	}
}

func TestIssueCodeReplacesPreviousCode(t *testing.T) {
	sender := &fakeSMS{}
	svc, db := newPhoneVerifyTestService(t, "otp_reissue", &fakeIdentity{}, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	firstCode := sender.lastCode(t)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("second issue failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.PhoneVerification{}).Where("phone = ?", "01012345678").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 pending record after reissue, got %d", count)
	}

	// 旧验证码在重发后立即作废
	idSvc := &fakeIdentity{}
	svc.identity = idSvc
	if _, err := svc.VerifyAndSignup(context.Background(), validSignupInput("01012345678", firstCode)); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid for stale code, got: %v", err)
	}
}

func TestIssueCodeKeepsRecordWhenSMSFails(t *testing.T) {
	sender := &fakeSMS{sendErr: errors.New("sens unavailable")}
	svc, db := newPhoneVerifyTestService(t, "otp_sms_fail", &fakeIdentity{}, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); !errors.Is(err, ErrSMSSendFailed) {
		t.Fatalf("expected ErrSMSSendFailed, got: %v", err)
	}

	// 短信下发失败不回收记录，验证码保持待验证状态
	var record models.PhoneVerification
	if err := db.Where("phone = ?", "01012345678").First(&record).Error; err != nil {
		t.Fatalf("expected pending record after sms failure: %v", err)
	}
	if record.UsedAt != nil {
		t.Fatalf("expected record to stay unused, got used_at=%v", record.UsedAt)
	}
	var count int64
	if err := db.Model(&models.PhoneVerification{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 pending record, got %d", count)
	}
}

func TestVerifyAndSignupSuccess(t *testing.T) {
	sender := &fakeSMS{}
	idSvc := &fakeIdentity{nextID: "auth-uuid-1"}
	svc, db := newPhoneVerifyTestService(t, "signup_ok", idSvc, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := sender.lastCode(t)

	profile, err := svc.VerifyAndSignup(context.Background(), validSignupInput("01012345678", code))
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if profile.AuthUserID != "auth-uuid-1" {
		t.Fatalf("unexpected auth user id: %s", profile.AuthUserID)
	}
	if len(idSvc.created) != 1 {
		t.Fatalf("expected 1 identity user created, got %d", len(idSvc.created))
	}
	if got := idSvc.created[0].Phone; got != "+821012345678" {
		t.Fatalf("expected E.164 phone, got %s", got)
	}

	var record models.PhoneVerification
	if err := db.Where("phone = ?", "01012345678").First(&record).Error; err != nil {
		t.Fatalf("load otp record failed: %v", err)
	}
	if record.UsedAt == nil {
		t.Fatalf("expected otp marked consumed")
	}
}

func TestVerifyAndSignupSingleUse(t *testing.T) {
	sender := &fakeSMS{}
	idSvc := &fakeIdentity{}
	svc, _ := newPhoneVerifyTestService(t, "signup_single_use", idSvc, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := sender.lastCode(t)

	if _, err := svc.VerifyAndSignup(context.Background(), validSignupInput("01012345678", code)); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	second := validSignupInput("01012345678", code)
	second.Email = "other@example.com"
	second.Nickname = "다른닉네임"
	if _, err := svc.VerifyAndSignup(context.Background(), second); !errors.Is(err, ErrOTPUsed) {
		t.Fatalf("expected ErrOTPUsed on reuse, got: %v", err)
	}
}

func TestVerifyAndSignupWrongCode(t *testing.T) {
	sender := &fakeSMS{}
	svc, _ := newPhoneVerifyTestService(t, "signup_wrong_code", &fakeIdentity{}, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.VerifyAndSignup(context.Background(), validSignupInput("01012345678", "000000")); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got: %v", err)
	}
}

func TestVerifyAndSignupRequiresJobType(t *testing.T) {
	sender := &fakeSMS{}
	idSvc := &fakeIdentity{nextID: "auth-no-job"}
	svc, _ := newPhoneVerifyTestService(t, "signup_no_job", idSvc, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	input := validSignupInput("01012345678", sender.lastCode(t))
	input.JobType = "   "
	if _, err := svc.VerifyAndSignup(context.Background(), input); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired for missing job type, got: %v", err)
	}
	if len(idSvc.created) != 0 {
		t.Fatalf("expected no identity account, got %d", len(idSvc.created))
	}
}

func TestVerifyAndSignupExpiredCodeDeleted(t *testing.T) {
	sender := &fakeSMS{}
	svc, db := newPhoneVerifyTestService(t, "signup_expired", &fakeIdentity{}, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := sender.lastCode(t)
	if err := db.Model(&models.PhoneVerification{}).
		Where("phone = ?", "01012345678").
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("expire record failed: %v", err)
	}

	if _, err := svc.VerifyAndSignup(context.Background(), validSignupInput("01012345678", code)); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got: %v", err)
	}

	// 过期记录被物理删除，再次提交同码表现为验证码不正确
	if _, err := svc.VerifyAndSignup(context.Background(), validSignupInput("01012345678", code)); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid after cleanup, got: %v", err)
	}
	var count int64
	if err := db.Model(&models.PhoneVerification{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected expired record removed, got %d rows", count)
	}
}

func TestVerifyAndSignupRollsBackIdentityOnProfileFailure(t *testing.T) {
	sender := &fakeSMS{}
	idSvc := &fakeIdentity{nextID: "auth-orphan"}
	svc, db := newPhoneVerifyTestService(t, "signup_rollback", idSvc, sender)

	// 预置同昵称但不同手机号的资料，让资料唯一索引在写入时冲突
	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := sender.lastCode(t)
	conflict := models.UserProfile{AuthUserID: "auth-orphan", Name: "선점", Nickname: "선점닉네임", PhoneNumber: "01099998888"}
	if err := db.Create(&conflict).Error; err != nil {
		t.Fatalf("create conflicting profile failed: %v", err)
	}

	input := validSignupInput("01012345678", code)
	input.Nickname = "새닉네임"
	if _, err := svc.VerifyAndSignup(context.Background(), input); !errors.Is(err, ErrSignupFailed) {
		t.Fatalf("expected ErrSignupFailed, got: %v", err)
	}
	if len(idSvc.deleted) != 1 || idSvc.deleted[0] != "auth-orphan" {
		t.Fatalf("expected compensating identity delete, got: %v", idSvc.deleted)
	}
}

func TestVerifyAndSignupNicknameRules(t *testing.T) {
	sender := &fakeSMS{}
	svc, db := newPhoneVerifyTestService(t, "signup_nickname", &fakeIdentity{}, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := sender.lastCode(t)

	short := validSignupInput("01012345678", code)
	short.Nickname = "a"
	if _, err := svc.VerifyAndSignup(context.Background(), short); !errors.Is(err, ErrNicknameTooShort) {
		t.Fatalf("expected ErrNicknameTooShort, got: %v", err)
	}

	taken := models.UserProfile{AuthUserID: "auth-x", Name: "선점", Nickname: "테스터", PhoneNumber: "01000001111"}
	if err := db.Create(&taken).Error; err != nil {
		t.Fatalf("create taken profile failed: %v", err)
	}
	if _, err := svc.VerifyAndSignup(context.Background(), validSignupInput("01012345678", code)); !errors.Is(err, ErrNicknameExists) {
		t.Fatalf("expected ErrNicknameExists, got: %v", err)
	}
}

func TestVerifyAndSignupEmailExists(t *testing.T) {
	sender := &fakeSMS{}
	idSvc := &fakeIdentity{createErr: identity.ErrEmailExists}
	svc, _ := newPhoneVerifyTestService(t, "signup_email_exists", idSvc, sender)

	if err := svc.IssueCode(context.Background(), "01012345678"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := sender.lastCode(t)

	if _, err := svc.VerifyAndSignup(context.Background(), validSignupInput("01012345678", code)); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got: %v", err)
	}
}

func TestToE164KR(t *testing.T) {
	if got := ToE164KR("01012345678"); got != "+821012345678" {
		t.Fatalf("unexpected e164: %s", got)
	}
	if got := ToE164KR("1012345678"); got != "+821012345678" {
		t.Fatalf("unexpected e164 without leading zero: %s", got)
	}
}
