package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/credittalk/api/internal/config"
	"github.com/credittalk/api/internal/identity"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/naver"
	"github.com/credittalk/api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// UserAccountService 用户账号服务
type UserAccountService struct {
	cfg           *config.Config
	profileRepo   repository.UserProfileRepository
	pushTokenRepo repository.PushTokenRepository
	identity      identity.Service
	naver         naver.ProfileFetcher
}

// NewUserAccountService 创建用户账号服务
func NewUserAccountService(cfg *config.Config, profileRepo repository.UserProfileRepository, pushTokenRepo repository.PushTokenRepository, identitySvc identity.Service, naverClient naver.ProfileFetcher) *UserAccountService {
	return &UserAccountService{
		cfg:           cfg,
		profileRepo:   profileRepo,
		pushTokenRepo: pushTokenRepo,
		identity:      identitySvc,
		naver:         naverClient,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	AuthUserID string `json:"auth_user_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAccountService) GenerateUserJWT(authUserID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(resolveUserJWTExpireHours(s.cfg.UserJWT)) * time.Hour)
	claims := UserJWTClaims{
		AuthUserID: authUserID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAccountService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// CheckEmailAvailability 检查邮箱是否可注册
func (s *UserAccountService) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}
	if s.identity == nil {
		return false, identity.ErrConfigInvalid
	}
	user, err := s.identity.FindUserByEmail(ctx, normalized)
	if err != nil {
		return false, err
	}
	return user == nil, nil
}

// CheckNicknameAvailability 检查昵称是否可用
func (s *UserAccountService) CheckNicknameAvailability(nickname string) (bool, error) {
	trimmed := strings.TrimSpace(nickname)
	if utf8.RuneCountInString(trimmed) < 2 {
		return false, ErrNicknameTooShort
	}
	exist, err := s.profileRepo.GetByNickname(trimmed)
	if err != nil {
		return false, err
	}
	return exist == nil, nil
}

// FindEmailByProfile 按姓名+手机号找回邮箱（脱敏返回）
func (s *UserAccountService) FindEmailByProfile(ctx context.Context, name, phone string) (string, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return "", ErrFieldsRequired
	}

	profile, err := s.profileRepo.GetByNameAndPhone(name, phone)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", ErrNotFound
	}

	if s.identity == nil {
		return "", identity.ErrConfigInvalid
	}
	user, err := s.identity.GetUser(ctx, profile.AuthUserID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if strings.TrimSpace(user.Email) == "" {
		return "", ErrNotFound
	}
	return maskEmail(user.Email), nil
}

// GetProfile 获取当前用户资料
func (s *UserAccountService) GetProfile(authUserID string) (*models.UserProfile, error) {
	if strings.TrimSpace(authUserID) == "" {
		return nil, ErrNotFound
	}
	profile, err := s.profileRepo.GetByAuthUserID(authUserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// SignInWithNaver 使用 Naver 访问令牌登录（不存在则自动注册）
func (s *UserAccountService) SignInWithNaver(ctx context.Context, accessToken string) (*models.UserProfile, string, time.Time, error) {
	if s.naver == nil || !s.cfg.Naver.Enabled {
		return nil, "", time.Time{}, ErrNaverDisabled
	}
	if s.identity == nil {
		return nil, "", time.Time{}, identity.ErrConfigInvalid
	}

	np, err := s.naver.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("%w: %v", ErrNaverAuthFailed, err)
	}

	profile, err := s.profileRepo.GetByNaverID(np.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if profile != nil {
		return s.issueNaverSession(ctx, profile, np)
	}

	email := s.resolveNaverEmail(np)
	user, err := s.identity.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		password, err := randomPassword()
		if err != nil {
			return nil, "", time.Time{}, err
		}
		user, err = s.identity.CreateUser(ctx, identity.CreateUserInput{
			Email:        email,
			Password:     password,
			EmailConfirm: true,
			UserMetadata: map[string]interface{}{
				"name":     np.Name,
				"nickname": np.Nickname,
				"provider": "naver",
			},
		})
		if err != nil {
			return nil, "", time.Time{}, fmt.Errorf("%w: %v", ErrNaverAuthFailed, err)
		}
	}

	// 既有邮箱账号：绑定 Naver ID 后直接登录
	profile, err = s.profileRepo.GetByAuthUserID(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if profile != nil {
		naverID := np.ID
		profile.NaverID = &naverID
		if err := s.profileRepo.Update(profile); err != nil {
			return nil, "", time.Time{}, err
		}
		return s.issueNaverSession(ctx, profile, np)
	}

	nickname, err := s.resolveAvailableNickname(np)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	naverID := np.ID
	profile = &models.UserProfile{
		AuthUserID:  user.ID,
		Name:        strings.TrimSpace(np.Name),
		Nickname:    nickname,
		PhoneNumber: digitsOnly(np.Mobile),
		NaverID:     &naverID,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		if delErr := s.identity.DeleteUser(ctx, user.ID); delErr != nil {
			logger.Errorw("Naver 注册回滚失败", "auth_user_id", user.ID, "error", delErr)
		}
		return nil, "", time.Time{}, fmt.Errorf("%w: %v", ErrNaverAuthFailed, err)
	}

	token, expiresAt, err := s.GenerateUserJWT(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return profile, token, expiresAt, nil
}

// DeleteAccount 注销账号（推送令牌、资料、身份账号一并删除）
func (s *UserAccountService) DeleteAccount(ctx context.Context, authUserID string) error {
	if strings.TrimSpace(authUserID) == "" {
		return ErrNotFound
	}
	profile, err := s.profileRepo.GetByAuthUserID(authUserID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}

	if s.pushTokenRepo != nil {
		if err := s.pushTokenRepo.DeleteByUser(authUserID); err != nil {
			logger.Warnw("删除推送令牌失败", "auth_user_id", authUserID, "error", err)
		}
	}
	if err := s.profileRepo.DeleteByAuthUserID(authUserID); err != nil {
		return err
	}
	if s.identity != nil {
		if err := s.identity.DeleteUser(ctx, authUserID); err != nil && !errors.Is(err, identity.ErrUserNotFound) {
			return err
		}
	}
	return nil
}

func (s *UserAccountService) issueNaverSession(ctx context.Context, profile *models.UserProfile, np *naver.Profile) (*models.UserProfile, string, time.Time, error) {
	email := np.Email
	if user, err := s.identity.GetUser(ctx, profile.AuthUserID); err == nil && user != nil {
		email = user.Email
	}
	token, expiresAt, err := s.GenerateUserJWT(profile.AuthUserID, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return profile, token, expiresAt, nil
}

func (s *UserAccountService) resolveNaverEmail(np *naver.Profile) string {
	if normalized, err := normalizeEmail(np.Email); err == nil {
		return normalized
	}
	pad := strings.TrimSpace(s.cfg.Naver.EmailDomainPad)
	if pad == "" {
		pad = "naver.credittalk.local"
	}
	return strings.ToLower(fmt.Sprintf("naver_%s@%s", np.ID, pad))
}

func (s *UserAccountService) resolveAvailableNickname(np *naver.Profile) (string, error) {
	base := strings.TrimSpace(np.Nickname)
	if base == "" {
		base = strings.TrimSpace(np.Name)
	}
	if utf8.RuneCountInString(base) < 2 {
		base = "네이버회원"
	}

	candidate := base
	for i := 0; i < 5; i++ {
		exist, err := s.profileRepo.GetByNickname(candidate)
		if err != nil {
			return "", err
		}
		if exist == nil {
			return candidate, nil
		}
		suffix, err := randomNumericSuffix()
		if err != nil {
			return "", err
		}
		candidate = base + suffix
	}
	return "", ErrNicknameExists
}

// maskEmail 邮箱脱敏：本地部分保留前 3 位
func maskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return email
	}
	local := parts[0]
	visible := 3
	if len(local) < visible {
		visible = 1
	}
	if visible > len(local) {
		visible = len(local)
	}
	masked := len(local) - visible
	if masked < 2 {
		masked = 2
	}
	return local[:visible] + strings.Repeat("*", masked) + "@" + parts[1]
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func randomPassword() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func randomNumericSuffix() (string, error) {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", (int(buf[0])<<8|int(buf[1]))%10000), nil
}
