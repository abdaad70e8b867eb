package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

const bannerArt = ` ██╗  ██╗ ██████╗ ████████╗███████╗
 ██║  ██║██╔═══██╗╚══██╔══╝██╔════╝
 ███████║██║   ██║   ██║   ███████╗
 ██╔══██║██║   ██║   ██║   ╚════██║
 ██║  ██║╚██████╔╝   ██║   ███████║
 ╚═╝  ╚═╝ ╚═════╝    ╚═╝   ╚══════╝`

// bannerMinWidth is the narrowest width the block letters fit in.
const bannerMinWidth = 40

// Banner renders the app name in block letters, or on one spaced-out line
// when width is too narrow for them.
func Banner(width int) string {
	hots := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	quiz := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	if width < bannerMinWidth {
		return hots.Render("H O T S") + "  " + quiz.Render("Q U I Z")
	}
	return lipgloss.JoinVertical(lipgloss.Center, hots.Render(bannerArt), quiz.Render("Q U I Z"))
}
