package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNo(t *testing.T) {
	orderNo := GenerateOrderNo()

	parts := strings.Split(orderNo, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "PL", parts[0])
	assert.Equal(t, time.Now().Format("20060102"), parts[1])
	assert.Len(t, parts[2], 6)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestGenerateReceiptNo(t *testing.T) {
	receiptNo := GenerateReceiptNo()
	assert.True(t, strings.HasPrefix(receiptNo, "RC-"))

	parts := strings.Split(receiptNo, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 6)
}

func TestGenerateCartTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := GenerateCartToken()
		assert.NotEmpty(t, token)
		assert.False(t, seen[token], "duplicate token %s", token)
		seen[token] = true
	}
}

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret("pl_whk")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(secret, "pl_whk_"))
	assert.Len(t, secret, len("pl_whk_")+64)
}
