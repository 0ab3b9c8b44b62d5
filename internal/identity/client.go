package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/credittalk/api/internal/config"
)

var (
	ErrConfigInvalid   = errors.New("identity config invalid")
	ErrRequestFailed   = errors.New("identity request failed")
	ErrResponseInvalid = errors.New("identity response invalid")
	ErrUserNotFound    = errors.New("identity user not found")
	ErrEmailExists     = errors.New("identity email already registered")
)

// User 身份服务用户
type User struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	CreatedAt    time.Time              `json:"created_at"`
}

// CreateUserInput 创建用户入参
type CreateUserInput struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password,omitempty"`
	Phone        string                 `json:"phone,omitempty"`
	EmailConfirm bool                   `json:"email_confirm"`
	PhoneConfirm bool                   `json:"phone_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// Service 身份服务管理接口
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	DeleteUser(ctx context.Context, id string) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}

// Client 身份服务管理接口的 HTTP 客户端
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient 创建身份服务客户端
func NewClient(cfg *config.IdentityConfig) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	timeout := 5 * time.Second
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// CreateUser 创建已确认的身份账号
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/admin/users", input)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnprocessableEntity || status == http.StatusConflict {
		return nil, ErrEmailExists
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrResponseInvalid, status, truncate(body))
	}
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrResponseInvalid)
	}
	return &user, nil
}

// GetUser 查询身份账号
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrUserNotFound
	}
	body, status, err := c.do(ctx, http.MethodGet, "/admin/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrResponseInvalid, status, truncate(body))
	}
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return &user, nil
}

// DeleteUser 删除身份账号（资料写入失败时的补偿）
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrUserNotFound
	}
	body, status, err := c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return ErrUserNotFound
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("%w: unexpected status %d: %s", ErrResponseInvalid, status, truncate(body))
	}
	return nil
}

// FindUserByEmail 按邮箱精确查找身份账号，未找到时返回 nil
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	path := "/admin/users?per_page=50&filter=" + url.QueryEscape(email)
	body, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrResponseInvalid, status, truncate(body))
	}
	var resp struct {
		Users []User `json:"users"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	// filter 为模糊匹配，这里只认可完全一致的邮箱
	for i := range resp.Users {
		if strings.EqualFold(resp.Users[i].Email, email) {
			return &resp.Users[i], nil
		}
	}
	return nil, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: marshal payload failed: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
		req.Header.Set("apikey", c.serviceKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body failed: %v", ErrRequestFailed, err)
	}
	return body, resp.StatusCode, nil
}

func truncate(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
