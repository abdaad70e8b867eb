package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// The smallest terminal the quiz screens fit in.
const (
	MinWidth  = 72
	MinHeight = 22
)

const appName = "HOTS Quiz"

type KeyHint struct {
	Key         string
	Description string
}

// Status is the right-hand side of the header. The zero value renders nothing.
type Status struct {
	Subject  string
	Answered int
	Total    int
}

// StatusProvider is implemented by screens that show quiz progress in the header.
type StatusProvider interface {
	Status() Status
}

// Chrome is drawn around the active screen: a header strip with the app
// name, screen title and status, and a footer strip of key hints.
type Chrome struct {
	Title  string
	Status Status
	Hints  []KeyHint
}

var strip = lipgloss.NewStyle().Background(theme.BgCard).Padding(0, 1)

// Render lays out the chrome at width x height. body is called with the
// space left between header and footer.
func (c Chrome) Render(width, height int, body func(w, h int) string) string {
	if width < MinWidth || height < MinHeight {
		return tooSmall(width, height)
	}

	header := c.header(width)
	footer := c.footer(width)
	h := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (c Chrome) header(width int) string {
	name := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(appName)
	title := theme.Body.Render(c.Title)

	var right []string
	if c.Status.Subject != "" {
		right = append(right, lipgloss.NewStyle().Foreground(theme.Secondary).Render(c.Status.Subject))
	}
	if c.Status.Total > 0 {
		right = append(right, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("✎ %d/%d", c.Status.Answered, c.Status.Total)))
	}

	inner := width - strip.GetHorizontalFrameSize()
	return strip.Width(width).Render(spread(inner, name, title, strings.Join(right, "   ")))
}

func (c Chrome) footer(width int) string {
	parts := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}
	return strip.Width(width).Render(strings.Join(parts, "   "))
}

// spread places center in the middle of width cells with left and right
// flush to the edges. center shifts right rather than overlap left.
func spread(width int, left, center, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max(1, (width-cw)/2-lw)
	gapR := max(1, width-lw-gapL-cw-rw)
	return left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

func tooSmall(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nResize to at least %d x %d\n(currently %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}
