package stt

import (
	"bytes"
	"context"
	"encoding/base64"
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
	ErrConfigInvalid    = errors.New("speech config invalid")
	ErrTranscribeFailed = errors.New("speech transcribe failed")
)

const speechScope = "https://www.googleapis.com/auth/cloud-platform"

// Transcriber 语音转写接口
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// GoogleSpeechClient Google Speech v2 识别客户端
type GoogleSpeechClient struct {
	endpoint    string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// NewGoogleSpeechClient 创建 Speech v2 客户端
func NewGoogleSpeechClient(cfg *config.SpeechConfig) (*GoogleSpeechClient, error) {
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
	jwtConfig, err := google.JWTConfigFromJSON(keyData, speechScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account failed: %v", ErrConfigInvalid, err)
	}

	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "global"
	}
	recognizer := strings.TrimSpace(cfg.Recognizer)
	if recognizer == "" {
		recognizer = "_"
	}
	host := "speech.googleapis.com"
	if location != "global" {
		host = location + "-speech.googleapis.com"
	}
	endpoint := fmt.Sprintf("https://%s/v2/projects/%s/locations/%s/recognizers/%s:recognize",
		host, strings.TrimSpace(cfg.ProjectID), location, recognizer)

	timeout := 30 * time.Second
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &GoogleSpeechClient{
		endpoint:    endpoint,
		tokenSource: jwtConfig.TokenSource(context.Background()),
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// Transcribe 同步识别音频内容，返回拼接后的转写文本
func (c *GoogleSpeechClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio", ErrTranscribeFailed)
	}

	accessToken, err := c.tokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("%w: fetch access token failed: %v", ErrTranscribeFailed, err)
	}

	payload := map[string]interface{}{
		"config": map[string]interface{}{
			"autoDecodingConfig": map[string]interface{}{},
			"languageCodes":      []string{"ko-KR"},
			"model":              "long",
		},
		"content": base64.StdEncoding.EncodeToString(audio),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal payload failed: %v", ErrTranscribeFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscribeFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscribeFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body failed: %v", ErrTranscribeFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d: %s", ErrTranscribeFailed, resp.StatusCode, truncate(respBody))
	}

	var result struct {
		Results []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"results"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscribeFailed, err)
	}

	parts := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		if len(r.Alternatives) > 0 && r.Alternatives[0].Transcript != "" {
			parts = append(parts, r.Alternatives[0].Transcript)
		}
	}
	return strings.Join(parts, " "), nil
}

func truncate(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
