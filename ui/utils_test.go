package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds ago", now.Add(-20 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 min ago"},
		{"minutes", now.Add(-10 * time.Minute), "10 min ago"},
		{"one hour", now.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-30 * time.Hour), "1 day ago"},
		{"days", now.Add(-72 * time.Hour), "3 days ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatRelativeTime(tc.at))
		})
	}
}

func TestFormatRelativeTimeOldDate(t *testing.T) {
	old := time.Date(2023, time.March, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2023", formatRelativeTime(old))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer text", 5))
	assert.Equal(t, "…", truncate("ab", 1))
	// Rune aware, not byte aware.
	assert.Equal(t, "héll…", truncate("héllo world", 5))
}
