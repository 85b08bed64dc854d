package formatter

import (
	"fmt"
	"strings"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 75% from a 0-100
// percentage. Green above 66, yellow 33-66, red below.
func RenderProgress(pct int, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderStepper renders the linear lifecycle as a stepper line:
// completed stages get a check, the current stage a filled dot, future
// stages an empty dot. A cancelled contract renders a single danger line
// instead of stepper positions.
func RenderStepper(current domain.ContractStatus) string {
	if current == domain.StatusCancelled {
		return StyleRed.Render("✗ Cancelled")
	}

	currentOrder := domain.MetaFor(current).Order
	parts := make([]string, 0, len(domain.StepperStatuses))
	for _, s := range domain.StepperStatuses {
		meta := domain.MetaFor(s)
		switch {
		case meta.Order < currentOrder:
			parts = append(parts, StyleGreen.Render("✓ "+meta.Label))
		case meta.Order == currentOrder:
			parts = append(parts, ToneStyle(meta.Tone).Bold(true).Render("● "+meta.Label))
		default:
			parts = append(parts, StyleDim.Render("○ "+meta.Label))
		}
	}
	return strings.Join(parts, Dim(" ─ "))
}
