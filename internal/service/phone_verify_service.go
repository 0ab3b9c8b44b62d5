package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/credittalk/api/internal/config"
	"github.com/credittalk/api/internal/constants"
	"github.com/credittalk/api/internal/identity"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/repository"
	"github.com/credittalk/api/internal/sms"
)

var phonePattern = regexp.MustCompile(`^\d{10,11}$`)

// PhoneVerifyService 手机验证码签发与注册服务
type PhoneVerifyService struct {
	cfg         *config.Config
	otpRepo     repository.PhoneVerificationRepository
	profileRepo repository.UserProfileRepository
	identity    identity.Service
	smsSender   sms.Sender
}

// NewPhoneVerifyService 创建手机验证码服务
func NewPhoneVerifyService(
	cfg *config.Config,
	otpRepo repository.PhoneVerificationRepository,
	profileRepo repository.UserProfileRepository,
	identitySvc identity.Service,
	smsSender sms.Sender,
) *PhoneVerifyService {
	return &PhoneVerifyService{
		cfg:         cfg,
		otpRepo:     otpRepo,
		profileRepo: profileRepo,
		identity:    identitySvc,
		smsSender:   smsSender,
	}
}

// IssueCode 签发验证码并下发短信
// 同一手机号重新签发时旧验证码立即作废。
func (s *PhoneVerifyService) IssueCode(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}

	exist, err := s.profileRepo.GetByPhoneNumber(phone)
	if err != nil {
		return err
	}
	if exist != nil {
		return ErrPhoneExists
	}

	code, err := randomOTP()
	if err != nil {
		return err
	}

	now := time.Now()
	record := &models.PhoneVerification{
		Phone:     phone,
		HashedOTP: hashOTP(code),
		ExpiresAt: now.Add(time.Duration(resolveOTPExpireMinutes(s.cfg.OTP)) * time.Minute),
		CreatedAt: now,
	}

	// 先删旧后插新，保证同一手机号只有一条待验证记录
	if err := s.otpRepo.DeleteByPhone(phone); err != nil {
		return err
	}
	if err := s.otpRepo.Create(record); err != nil {
		return err
	}

	// 短信下发只是副作用：失败时记录保持待验证状态，不做补偿
	content := fmt.Sprintf("[CreditTalk] 인증번호: %s", code)
	if err := s.smsSender.Send(ctx, phone, content); err != nil {
		return fmt.Errorf("%w: %v", ErrSMSSendFailed, err)
	}
	return nil
}

// SignupInput 验证并注册入参
type SignupInput struct {
	Phone    string
	Code     string
	Email    string
	Password string
	Name     string
	Nickname string
	JobType  string
}

// VerifyAndSignup 校验验证码并完成注册
// 身份账号与用户资料要么都建立，要么都不建立。
func (s *PhoneVerifyService) VerifyAndSignup(ctx context.Context, input SignupInput) (*models.UserProfile, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)
	input.Nickname = strings.TrimSpace(input.Nickname)
	input.JobType = strings.TrimSpace(input.JobType)
	if input.Phone == "" || input.Code == "" || input.Email == "" ||
		input.Password == "" || input.Name == "" || input.Nickname == "" ||
		input.JobType == "" {
		return nil, ErrFieldsRequired
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len([]rune(input.Nickname)) < 2 {
		return nil, ErrNicknameTooShort
	}

	record, err := s.checkCode(input.Phone, input.Code)
	if err != nil {
		return nil, err
	}

	if taken, err := s.profileRepo.GetByNickname(input.Nickname); err != nil {
		return nil, err
	} else if taken != nil {
		return nil, ErrNicknameExists
	}

	user, err := s.identity.CreateUser(ctx, identity.CreateUserInput{
		Email:        email,
		Password:     input.Password,
		Phone:        ToE164KR(input.Phone),
		EmailConfirm: true,
		PhoneConfirm: true,
		UserMetadata: map[string]interface{}{
			"name":     input.Name,
			"nickname": input.Nickname,
		},
	})
	if err != nil {
		if identityEmailExists(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("%w: %v", ErrSignupFailed, err)
	}

	profile := &models.UserProfile{
		AuthUserID:  user.ID,
		Name:        input.Name,
		Nickname:    input.Nickname,
		PhoneNumber: input.Phone,
		JobType:     input.JobType,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		// 资料写入失败时补偿删除身份账号，避免出现孤儿账号
		if delErr := s.identity.DeleteUser(ctx, user.ID); delErr != nil {
			logger.Errorw("identity_compensation_delete_failed",
				"auth_user_id", user.ID,
				"error", delErr,
			)
		}
		return nil, fmt.Errorf("%w: %v", ErrSignupFailed, err)
	}

	// 注册成功后尽力标记验证码已消费，失败只记录日志
	consumed, err := s.otpRepo.ConsumeIfUnused(record.ID, time.Now())
	if err != nil {
		logger.Warnw("otp_consume_failed", "record_id", record.ID, "error", err)
	} else if !consumed {
		logger.Warnw("otp_already_consumed", "record_id", record.ID)
	}

	return profile, nil
}

// checkCode 校验验证码状态：不存在/过期/已用各自返回独立错误
func (s *PhoneVerifyService) checkCode(phone, code string) (*models.PhoneVerification, error) {
	record, err := s.otpRepo.GetByPhoneAndHash(phone, hashOTP(code))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrOTPInvalid
	}
	if record.ExpiresAt.Before(time.Now()) {
		// 过期记录立即删除，之后同码重试表现为验证码不正确
		if delErr := s.otpRepo.DeleteByID(record.ID); delErr != nil {
			logger.Warnw("otp_expired_cleanup_failed", "record_id", record.ID, "error", delErr)
		}
		return nil, ErrOTPExpired
	}
	if record.UsedAt != nil {
		return nil, ErrOTPUsed
	}
	return record, nil
}

// ToE164KR 将本地手机号转换为韩国 E.164 格式
func ToE164KR(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "0") {
		return "+" + constants.PhoneCountryCodeKR + phone[1:]
	}
	return "+" + constants.PhoneCountryCodeKR + phone
}

func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// randomOTP 生成 [100000, 999999] 均匀分布的六位验证码
func randomOTP() (string, error) {
	span := int64(constants.OTPMax - constants.OTPMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", constants.OTPLength, n.Int64()+constants.OTPMin), nil
}

func identityEmailExists(err error) bool {
	return errors.Is(err, identity.ErrEmailExists)
}

func resolveOTPExpireMinutes(cfg config.OTPConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 5
	}
	return cfg.ExpireMinutes
}
