package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{1, time.Minute},
		{2, 2 * time.Minute},
		{3, 4 * time.Minute},
		{4, 8 * time.Minute},
		{5, 16 * time.Minute},
		{6, 30 * time.Minute},
		{20, 30 * time.Minute},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Backoff(tt.attempts), "attempts=%d", tt.attempts)
	}
}

func TestBackoff_NeverExceedsCap(t *testing.T) {
	for attempts := 1; attempts <= 50; attempts++ {
		assert.LessOrEqual(t, Backoff(attempts), 30*time.Minute)
	}
}
