package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// ComputeWebhookSignature computes the HMAC-SHA256 hex digest the
// provider attaches to webhook payloads: each field is concatenated as
// key+value in ascending key order, then signed with the account salt.
func ComputeWebhookSignature(fields map[string]string, salt string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(fields[k])
	}

	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks a webhook payload's hmac field against
// the signature computed over the remaining fields.
func VerifyWebhookSignature(fields map[string]string, salt, signature string) bool {
	expected := ComputeWebhookSignature(fields, salt)
	return hmac.Equal([]byte(expected), []byte(signature))
}
