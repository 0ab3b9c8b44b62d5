package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/credittalk/api/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrConfigInvalid = errors.New("fcm config invalid")
	ErrSendFailed    = errors.New("fcm send failed")
	ErrTokenInvalid  = errors.New("fcm token invalid")
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

// Message 推送消息，采用 data-only 负载由客户端决定展示方式
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender 推送发送接口
type Sender interface {
	Send(ctx context.Context, token string, msg Message) error
}

// FCMClient FCM HTTP v1 客户端
type FCMClient struct {
	projectID   string
	endpoint    string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// NewFCMClient 创建 FCM 客户端，服务账号密钥用于签发访问令牌
func NewFCMClient(cfg *config.PushConfig) (*FCMClient, error) {
	if cfg == nil || strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, fmt.Errorf("%w: project_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.ServiceAccountJSON) == "" {
		return nil, fmt.Errorf("%w: service_account_json is required", ErrConfigInvalid)
	}
	keyData, err := os.ReadFile(cfg.ServiceAccountJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: read service account failed: %v", ErrConfigInvalid, err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(keyData, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account failed: %v", ErrConfigInvalid, err)
	}
	timeout := 5 * time.Second
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	projectID := strings.TrimSpace(cfg.ProjectID)
	return &FCMClient{
		projectID:   projectID,
		endpoint:    fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", projectID),
		tokenSource: jwtConfig.TokenSource(context.Background()),
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// Send 发送单条推送
// 令牌已失效（UNREGISTERED/404）时返回 ErrTokenInvalid，调用方据此停用令牌。
func (c *FCMClient) Send(ctx context.Context, token string, msg Message) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrTokenInvalid
	}

	accessToken, err := c.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("%w: fetch access token failed: %v", ErrSendFailed, err)
	}

	data := map[string]string{
		"title": msg.Title,
		"body":  msg.Body,
	}
	for k, v := range msg.Data {
		data[k] = v
	}

	payload := map[string]interface{}{
		"message": map[string]interface{}{
			"token": token,
			"data":  data,
			"android": map[string]interface{}{
				"priority": "high",
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload failed: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode == http.StatusNotFound || strings.Contains(string(respBody), "UNREGISTERED") {
		return ErrTokenInvalid
	}
	return fmt.Errorf("%w: unexpected status %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
}
