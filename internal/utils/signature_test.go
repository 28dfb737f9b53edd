package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"tracking_no":"EP123","status":"delivered"}`)
	secret := "webhook-secret"

	sig := GenerateSignature(payload, secret)
	assert.Len(t, sig, 64)
	assert.True(t, VerifySignature(payload, sig, secret))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	payload := []byte(`{"tracking_no":"EP123","status":"delivered"}`)
	secret := "webhook-secret"
	sig := GenerateSignature(payload, secret)

	assert.False(t, VerifySignature([]byte(`{"tracking_no":"EP123","status":"failed"}`), sig, secret))
	assert.False(t, VerifySignature(payload, sig, "wrong-secret"))
	assert.False(t, VerifySignature(payload, "deadbeef", secret))
	assert.False(t, VerifySignature(payload, "", secret))
}

func TestGenerateSignatureDeterministic(t *testing.T) {
	payload := []byte("hello")
	assert.Equal(t, GenerateSignature(payload, "k"), GenerateSignature(payload, "k"))
	assert.NotEqual(t, GenerateSignature(payload, "k"), GenerateSignature(payload, "k2"))
}
