package components

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// minBarWidth keeps a bar visible next to a long label.
const minBarWidth = 4

// ProgressBar is a static, labelled bar. The fill is drawn by the bubbles
// progress model; it is never animated.
type ProgressBar struct {
	Label       string
	Percent     float64 // fraction in [0, 1]
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

// NewCountBar is filled to done/total and labelled "done/total". An empty
// total renders an empty bar.
func NewCountBar(done, total, width int) ProgressBar {
	p := ProgressBar{Label: fmt.Sprintf("%d/%d", done, total), Width: width}
	if total > 0 {
		p.Percent = float64(done) / float64(total)
	}
	return p
}

func (p ProgressBar) View() string {
	var label string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}

	opts := []progress.Option{
		progress.WithWidth(max(minBarWidth, p.Width-lipgloss.Width(label))),
		progress.WithColors(theme.BarBlend...),
		progress.WithScaled(true),
	}
	if !p.ShowPercent {
		opts = append(opts, progress.WithoutPercentage())
	}
	bar := progress.New(opts...)
	bar.EmptyColor = theme.Border
	bar.PercentageStyle = lipgloss.NewStyle().Foreground(theme.TextDim)

	return label + bar.ViewAs(min(1, max(0, p.Percent)))
}
