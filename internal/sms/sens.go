package sms

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/credittalk/api/internal/config"
	"github.com/credittalk/api/internal/constants"
)

var (
	ErrConfigInvalid = errors.New("sens config invalid")
	ErrSendFailed    = errors.New("sens send failed")
)

// Sender 短信发送接口
type Sender interface {
	Send(ctx context.Context, to, content string) error
}

// SENSClient Naver Cloud SENS 短信客户端
type SENSClient struct {
	serviceID  string
	accessKey  string
	secretKey  string
	fromNumber string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewSENSClient 创建 SENS 客户端
func NewSENSClient(cfg *config.SMSConfig) (*SENSClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.ServiceID) == "" ||
		strings.TrimSpace(cfg.AccessKey) == "" ||
		strings.TrimSpace(cfg.SecretKey) == "" ||
		strings.TrimSpace(cfg.FromNumber) == "" {
		return nil, fmt.Errorf("%w: service_id/access_key/secret_key/from_number are required", ErrConfigInvalid)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://sens.apigw.ntruss.com"
	}
	timeout := 5 * time.Second
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &SENSClient{
		serviceID:  strings.TrimSpace(cfg.ServiceID),
		accessKey:  strings.TrimSpace(cfg.AccessKey),
		secretKey:  strings.TrimSpace(cfg.SecretKey),
		fromNumber: strings.TrimSpace(cfg.FromNumber),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}, nil
}

// Send 发送短信，SENS 受理成功返回 202
func (c *SENSClient) Send(ctx context.Context, to, content string) error {
	to = strings.TrimSpace(to)
	if to == "" || strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: to/content are required", ErrSendFailed)
	}

	uri := fmt.Sprintf("/sms/v2/services/%s/messages", c.serviceID)
	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)

	payload := map[string]interface{}{
		"type":        "SMS",
		"countryCode": constants.PhoneCountryCodeKR,
		"from":        c.fromNumber,
		"content":     content,
		"messages": []map[string]string{
			{"to": to},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload failed: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uri, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("x-ncp-apigw-timestamp", timestamp)
	req.Header.Set("x-ncp-iam-access-key", c.accessKey)
	req.Header.Set("x-ncp-apigw-signature-v2", c.sign(http.MethodPost, uri, timestamp))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: unexpected status %d: %s", ErrSendFailed, resp.StatusCode, string(body))
	}
	return nil
}

// sign 生成 SENS 签名：base64(HMAC-SHA256("{method} {uri}\n{timestamp}\n{accessKey}"))
func (c *SENSClient) sign(method, uri, timestamp string) string {
	message := method + " " + uri + "\n" + timestamp + "\n" + c.accessKey
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
