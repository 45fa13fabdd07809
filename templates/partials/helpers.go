package partials

import (
	"fmt"
	"strings"
	"time"
)

// Helper function to format relative time
func formatRelativeTime(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	} else if duration < 7*24*time.Hour {
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	} else {
		return t.Format("Jan 2, 2006")
	}
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func statusClass(active bool) string {
	if active {
		return "badge badge-success"
	}
	return "badge badge-muted"
}

// pincodeSummary shows the first few codes of a region and how many more there are
func pincodeSummary(codes []string, max int) string {
	if len(codes) == 0 {
		return "None"
	}
	if len(codes) <= max {
		return strings.Join(codes, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(codes[:max], ", "), len(codes)-max)
}
