package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookSignature(t *testing.T) {
	fields := map[string]string{
		"payment_request_id": "req_123",
		"reference_number":   "BK-A1B2C3D4",
		"amount":             "174.40",
		"status":             "completed",
	}
	salt := "account-salt"

	sig := ComputeWebhookSignature(fields, salt)
	assert.Len(t, sig, 64, "hex-encoded sha256 digest")

	t.Run("round trip verifies", func(t *testing.T) {
		assert.True(t, VerifyWebhookSignature(fields, salt, sig))
	})

	t.Run("key order does not matter", func(t *testing.T) {
		reordered := map[string]string{
			"status":             "completed",
			"amount":             "174.40",
			"reference_number":   "BK-A1B2C3D4",
			"payment_request_id": "req_123",
		}
		assert.Equal(t, sig, ComputeWebhookSignature(reordered, salt))
	})

	t.Run("tampered field fails", func(t *testing.T) {
		tampered := map[string]string{
			"payment_request_id": "req_123",
			"reference_number":   "BK-A1B2C3D4",
			"amount":             "1.00",
			"status":             "completed",
		}
		assert.False(t, VerifyWebhookSignature(tampered, salt, sig))
	})

	t.Run("wrong salt fails", func(t *testing.T) {
		assert.False(t, VerifyWebhookSignature(fields, "other-salt", sig))
	})

	t.Run("empty signature fails", func(t *testing.T) {
		assert.False(t, VerifyWebhookSignature(fields, salt, ""))
	})
}
