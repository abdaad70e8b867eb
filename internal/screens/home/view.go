package home

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/ui/components"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// Below this content height the menu drops its button borders and the
// banner shrinks to one line.
const compactHeight = 24

const buttonWidth = 22

func (h *HomeScreen) View(width, height int) string {
	compact := height < compactHeight
	cw := components.ContentWidth(width)

	bannerWidth := cw
	if compact {
		bannerWidth = 0
	}
	sections := []string{
		components.Banner(bannerWidth),
		statsBox(h.stats, cw),
		h.buttons(compact),
	}
	if h.opts.Deps.Generator == nil {
		sections = append(sections, notice(theme.Accent, "⚠ Set an LLM API key to start a quiz (see hotsquiz --help)", cw))
	}
	if h.latest != "" {
		sections = append(sections, notice(theme.TextDim, fmt.Sprintf("New version %s available. Run hotsquiz update", h.latest), cw))
	}

	gap := "\n\n"
	if compact {
		gap = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, gap), width, height)
}

func statsBox(st stats, cw int) string {
	var line string
	if st.quizzes == 0 {
		line = theme.Hint.Render("No quizzes yet")
	} else {
		figure := func(c color.Color, text string) string {
			return lipgloss.NewStyle().Foreground(c).Bold(true).Render(text)
		}
		parts := []string{
			figure(theme.ArcadeYellow, fmt.Sprintf("✎ %d QUIZZES", st.quizzes)),
			figure(theme.Success, fmt.Sprintf("★ BEST %.0f%%", st.best)),
			figure(theme.ArcadeCyan, fmt.Sprintf("~ AVG %.0f%%", st.avg)),
		}
		line = strings.Join(parts, "  ")
		if st.favorite != "" {
			line += "\n" + theme.Hint.Render("most played: "+st.favorite.DisplayName())
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw).
		Align(lipgloss.Center).
		Render(line)
}

// buttons draws the menu as cabinet buttons, or as plain highlighted
// lines when compact.
func (h *HomeScreen) buttons(compact bool) string {
	style := lipgloss.NewStyle().Width(buttonWidth).Align(lipgloss.Center)
	if !compact {
		style = style.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}

	rendered := make([]string, len(h.menu.Items))
	for i, it := range h.menu.Items {
		st, label := style.Foreground(theme.Text), it.Label
		switch {
		case it.Disabled:
			st = style.Foreground(theme.TextDim)
		case i == h.menu.Selected:
			st = style.Bold(true).Foreground(theme.BgDark).Background(theme.ArcadeYellow).
				BorderForeground(theme.ArcadeYellow)
			label = "▸ " + label
		}
		rendered[i] = st.Render(label)
	}
	return lipgloss.JoinVertical(lipgloss.Center, rendered...)
}

func notice(c color.Color, text string, cw int) string {
	return lipgloss.NewStyle().Foreground(c).Width(cw).Align(lipgloss.Center).Render(text)
}
