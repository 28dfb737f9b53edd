package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiterAllowsFiveAttempts(t *testing.T) {
	rl := NewLoginRateLimiter()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d should pass", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "sixth attempt should be blocked")
}

func TestLoginRateLimiterIsPerIP(t *testing.T) {
	rl := NewLoginRateLimiter()

	for i := 0; i < 6; i++ {
		rl.Allow("10.0.0.1")
	}
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestLoginRateLimiterReset(t *testing.T) {
	rl := NewLoginRateLimiter()

	for i := 0; i < 6; i++ {
		rl.Allow("10.0.0.1")
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	rl.Reset("10.0.0.1")
	assert.True(t, rl.Allow("10.0.0.1"))
}
