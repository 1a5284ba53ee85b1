package operatorbus

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/gomoku-arena/internal/applog"
)

func sign(key, url string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(url))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureRoundTrip(t *testing.T) {
	body := []byte(`{"type":"test_notification"}`)
	sig := sign("secret", "https://example.com/webhooks/square", body)
	assert.True(t, VerifySignature("secret", "https://example.com/webhooks/square", body, sig))
	assert.False(t, VerifySignature("wrong-key", "https://example.com/webhooks/square", body, sig))
}

func TestWebhookHandlerRejectsBadSignature(t *testing.T) {
	bus := New(applog.New(applog.LevelError))
	handler := bus.WebhookHandler("secret", "https://example.com/webhooks/square")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/square", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("x-square-hmacsha256-signature", "not-a-real-signature")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookHandlerAcceptsValidSignatureAndClassifies(t *testing.T) {
	bus := New(applog.New(applog.LevelError))
	url := "https://example.com/webhooks/square"
	body := []byte(`{"type":"order.created","data":{"id":"o1"}}`)
	sig := sign("secret", url, body)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/square", bytes.NewReader(body))
	req.Header.Set("x-square-hmacsha256-signature", sig)
	rec := httptest.NewRecorder()

	bus.WebhookHandler("secret", url)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookHandlerBypassesSignatureForTestType(t *testing.T) {
	bus := New(applog.New(applog.LevelError))
	url := "https://example.com/webhooks/square"
	body := []byte(`{"type":"test"}`)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/square", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	bus.WebhookHandler("secret", url)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestClassifyKnownAndUnknownTypes(t *testing.T) {
	assert.Equal(t, EventNewOrder, classify("order.created"))
	assert.Equal(t, EventOrderUpdated, classify("order.updated"))
	assert.Equal(t, EventTestEvent, classify("test"))
	assert.Equal(t, EventTestEvent, classify("something-unrecognized"))
}
