package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestValidateWebhookSignature(t *testing.T) {
	secret := "sk_test_abc123"
	body := []byte(`{"event":"charge.success","data":{"reference":"LFB-TEST"}}`)

	if !ValidateWebhookSignature(secret, body, sign(secret, body)) {
		t.Error("valid signature rejected")
	}

	if ValidateWebhookSignature(secret, body, sign("sk_other", body)) {
		t.Error("signature from a different secret accepted")
	}

	tampered := append([]byte(nil), body...)
	tampered[len(tampered)-2] = 'X'
	if ValidateWebhookSignature(secret, tampered, sign(secret, body)) {
		t.Error("signature over different body accepted")
	}

	if ValidateWebhookSignature(secret, body, "") {
		t.Error("empty signature accepted")
	}

	if ValidateWebhookSignature("", body, sign("", body)) {
		t.Error("empty secret must fail closed")
	}
}

func TestParseWebhookEvent(t *testing.T) {
	body := []byte(`{
		"event": "charge.success",
		"data": {"reference": "LFB-9F2A41C03B7D", "amount": 7500000, "channel": "card"}
	}`)

	ev, err := ParseWebhookEvent(body)
	if err != nil {
		t.Fatalf("ParseWebhookEvent: %v", err)
	}
	if ev.Event != EventChargeSuccess {
		t.Errorf("event = %q, want %q", ev.Event, EventChargeSuccess)
	}
	if ev.Data.Reference != "LFB-9F2A41C03B7D" {
		t.Errorf("reference = %q", ev.Data.Reference)
	}
	if ev.Data.Amount != 7500000 {
		t.Errorf("amount = %d, want 7500000", ev.Data.Amount)
	}
	if ev.Data.Channel != "card" {
		t.Errorf("channel = %q, want card", ev.Data.Channel)
	}
}

func TestParseWebhookEventInvalidJSON(t *testing.T) {
	if _, err := ParseWebhookEvent([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
