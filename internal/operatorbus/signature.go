// Package operatorbus is the operator webhook bus (spec.md component H):
// inbound webhook verification and a disjoint socket set that fans
// verified events out to operator dashboards, entirely separate from the
// player-facing game rooms internal/wsconn serves. No library anywhere in
// the retrieved pack performs webhook signature verification, so this
// uses the standard library's crypto/hmac directly rather than reaching
// for an unrelated dependency just to avoid stdlib.
package operatorbus

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// VerifySignature checks that signature (base64-encoded) is the
// HMAC-SHA256 of notificationURL+body under key, the scheme Square's
// webhook signer uses and the one spec.md §4.H's "Operator webhook
// ingestion" names explicitly.
func VerifySignature(key, notificationURL string, body []byte, signature string) bool {
	if key == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(notificationURL))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
