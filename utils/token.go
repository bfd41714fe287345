package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns n random bytes hex-encoded, so the resulting string
// is 2n characters long. Device API tokens use 32 bytes (64 hex chars),
// enrollment tokens 16 bytes (32 hex chars).
func GenerateToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
