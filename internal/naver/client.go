package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/credittalk/api/internal/config"
)

var (
	ErrConfigInvalid = errors.New("naver config invalid")
	ErrAuthFailed    = errors.New("naver auth failed")
)

// Profile Naver 开放平台用户档案
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Mobile   string `json:"mobile"`
}

// ProfileFetcher Naver 用户档案获取接口
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// Client Naver 开放平台客户端
type Client struct {
	profileURL string
	httpClient *http.Client
}

// NewClient 创建 Naver 客户端
func NewClient(cfg *config.NaverConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	profileURL := strings.TrimSpace(cfg.ProfileURL)
	if profileURL == "" {
		profileURL = "https://openapi.naver.com/v1/nid/me"
	}
	timeout := 5 * time.Second
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &Client{
		profileURL: profileURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// FetchProfile 使用访问令牌换取用户档案
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, ErrAuthFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body failed: %v", ErrAuthFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrAuthFailed, resp.StatusCode)
	}

	var result struct {
		ResultCode string  `json:"resultcode"`
		Message    string  `json:"message"`
		Response   Profile `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if result.ResultCode != "00" || result.Response.ID == "" {
		return nil, fmt.Errorf("%w: resultcode=%s message=%s", ErrAuthFailed, result.ResultCode, result.Message)
	}
	return &result.Response, nil
}
