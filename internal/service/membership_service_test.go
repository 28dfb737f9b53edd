package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name        string
		accumulated string
		threshold   string
		want        int
	}{
		{"zero accumulated", "0", "80", 0},
		{"halfway", "40", "80", 50},
		{"rounds up", "43.60", "80", 55},
		{"rounds down", "43.50", "80", 54},
		{"exactly at threshold", "80", "80", 100},
		{"over threshold clamps", "200", "80", 100},
		{"negative clamps to zero", "-5", "80", 0},
		{"zero threshold means unlocked", "0", "0", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progressPercent(
				decimal.RequireFromString(tt.accumulated),
				decimal.RequireFromString(tt.threshold),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}
