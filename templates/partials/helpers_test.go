package partials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", formatRelativeTime(now))
	assert.Equal(t, "5 minutes ago", formatRelativeTime(now.Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "1 hour ago", formatRelativeTime(now.Add(-61*time.Minute)))
	assert.Equal(t, "2 days ago", formatRelativeTime(now.Add(-49*time.Hour)))

	old := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 4, 2025", formatRelativeTime(old))
}

func TestPincodeSummary(t *testing.T) {
	assert.Equal(t, "None", pincodeSummary(nil, 3))
	assert.Equal(t, "560001, 560003", pincodeSummary([]string{"560001", "560003"}, 3))
	assert.Equal(t, "560001, 560002 +2 more", pincodeSummary([]string{"560001", "560002", "560003", "560004"}, 2))
}
