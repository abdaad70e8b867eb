package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// ContentWidth is the inner width shared by every box inside a cabinet
// frame of frameWidth columns, so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return max(20, min(60, frameWidth-6))
}

// CabinetFrame centers content inside a double border filling the area.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card boxes body at content width cw. A non-empty title is set in the
// top-left corner above the body.
func Card(title, body string, cw int) string {
	if title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, theme.Hint.Render(title), "", body)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Render(body)
}
