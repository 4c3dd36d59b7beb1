package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// SignatureHeader carries the webhook HMAC on provider callbacks.
const SignatureHeader = "X-Paystack-Signature"

// ValidateWebhookSignature checks the HMAC-SHA512 hex signature over the raw
// request body. Comparison is constant-time.
func ValidateWebhookSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
