package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ToneStyle maps a domain status tone to its lipgloss style, so badge colors
// follow the lifecycle table instead of per-view switches.
func ToneStyle(tone domain.StatusTone) lipgloss.Style {
	switch tone {
	case domain.ToneSuccess:
		return StyleGreen
	case domain.ToneActive:
		return StyleBlue
	case domain.ToneInfo:
		return StyleYellow
	case domain.ToneDanger:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusBadge renders a colored badge like "● In Progress" for a contract status.
func StatusBadge(s domain.ContractStatus) string {
	meta := domain.MetaFor(s)
	return ToneStyle(meta.Tone).Render("● " + meta.Label)
}

// TrancheBadge renders a colored badge for a tranche status.
func TrancheBadge(s domain.TrancheStatus) string {
	switch s {
	case domain.TranchePaid:
		return StyleGreen.Render("paid")
	case domain.TrancheRequested:
		return StyleYellow.Render("requested")
	case domain.TrancheCancelled:
		return StyleRed.Render("cancelled")
	default:
		return StyleDim.Render("not paid")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
