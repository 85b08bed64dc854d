package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID shortens a UUID to its first 8 characters for display.
func TruncID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// HumanDate formats a date like "Apr 1, 2025".
func HumanDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp formats a timestamp like "Apr 1, 2025 14:05".
func HumanTimestamp(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}
