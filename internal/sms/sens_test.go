package sms

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/credittalk/api/internal/config"
)

func newTestSENSClient(t *testing.T, handler http.Handler) *SENSClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewSENSClient(&config.SMSConfig{
		ServiceID:  "ncp:sms:kr:123456:credittalk",
		AccessKey:  "test-access-key",
		SecretKey:  "test-secret-key",
		FromNumber: "01000000000",
		BaseURL:    server.URL,
	})
	if err != nil {
		t.Fatalf("new sens client failed: %v", err)
	}
	return client
}

func TestNewSENSClientValidation(t *testing.T) {
	if _, err := NewSENSClient(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for nil config, got: %v", err)
	}
	if _, err := NewSENSClient(&config.SMSConfig{ServiceID: "svc"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for partial config, got: %v", err)
	}
}

func TestSENSSend(t *testing.T) {
	var captured *http.Request
	var payload map[string]interface{}
	client := newTestSENSClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload failed: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"statusCode":"202"}`))
	}))

	if err := client.Send(context.Background(), "01012345678", "[CreditTalk] 인증번호: 123456"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	wantPath := "/sms/v2/services/ncp:sms:kr:123456:credittalk/messages"
	if captured.URL.Path != wantPath {
		t.Fatalf("unexpected path: %q", captured.URL.Path)
	}
	if got := captured.Header.Get("x-ncp-iam-access-key"); got != "test-access-key" {
		t.Fatalf("unexpected access key header: %q", got)
	}
	timestamp := captured.Header.Get("x-ncp-apigw-timestamp")
	if timestamp == "" {
		t.Fatalf("missing timestamp header")
	}

	message := "POST " + wantPath + "\n" + timestamp + "\n" + "test-access-key"
	mac := hmac.New(sha256.New, []byte("test-secret-key"))
	mac.Write([]byte(message))
	wantSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if got := captured.Header.Get("x-ncp-apigw-signature-v2"); got != wantSig {
		t.Fatalf("signature mismatch: want %q got %q", wantSig, got)
	}

	if payload["type"] != "SMS" || payload["from"] != "01000000000" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	messages, ok := payload["messages"].([]interface{})
	if !ok || len(messages) != 1 {
		t.Fatalf("unexpected messages: %+v", payload["messages"])
	}
	first, _ := messages[0].(map[string]interface{})
	if first["to"] != "01012345678" {
		t.Fatalf("unexpected recipient: %+v", first)
	}
}

func TestSENSSendRejectsBlankInput(t *testing.T) {
	client := newTestSENSClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request")
	}))

	if err := client.Send(context.Background(), "  ", "내용"); !errors.Is(err, ErrSendFailed) {
		t.Fatalf("expected ErrSendFailed for blank recipient, got: %v", err)
	}
	if err := client.Send(context.Background(), "01012345678", "  "); !errors.Is(err, ErrSendFailed) {
		t.Fatalf("expected ErrSendFailed for blank content, got: %v", err)
	}
}

func TestSENSSendNonAcceptedStatus(t *testing.T) {
	client := newTestSENSClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid signature"}`))
	}))

	err := client.Send(context.Background(), "01012345678", "테스트")
	if !errors.Is(err, ErrSendFailed) {
		t.Fatalf("expected ErrSendFailed, got: %v", err)
	}
}
