package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// KeyFingerprint returns a short, irreversible fingerprint of an API key
// for log correlation. Raw keys must never reach the logs.
func KeyFingerprint(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	return SHA256Hex(apiKey)[:12]
}
