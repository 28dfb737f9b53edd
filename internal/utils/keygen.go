package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateCartToken returns the opaque token stored in the guest cart cookie.
func GenerateCartToken() string {
	return uuid.New().String()
}

// GenerateOrderNo generates a human-readable order number.
// Format: PL-YYYYMMDD-XXXXXX
func GenerateOrderNo() string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("PL-%s-%s", time.Now().Format("20060102"), suffix)
}

// GenerateReceiptNo generates a receipt number.
// Format: RC-YYYYMMDD-XXXXXX
func GenerateReceiptNo() string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("RC-%s-%s", time.Now().Format("20060102"), suffix)
}

// GenerateSecret generates a random hex secret with the given prefix.
// Example: pl_secret_a1b2c3d4e5f6...
func GenerateSecret(prefix string) (string, error) {
	b := make([]byte, 32) // 64 char hex
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}
