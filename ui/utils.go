package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// tviewEscape protects user-provided text from being parsed as color tags.
func tviewEscape(s string) string {
	return tview.Escape(s)
}

// formatClock renders a message timestamp the way the thread shows it.
func formatClock(t time.Time) string {
	return t.Local().Format("03:04 PM")
}

// formatRelativeTime renders a last-message timestamp for the contact list.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d min ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	} else if diff < 30*24*time.Hour {
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
	return t.Format("Jan 2, 2006")
}

// truncate shortens a last-message preview to fit the sidebar row.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
