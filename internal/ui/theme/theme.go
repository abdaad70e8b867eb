package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. The cabinet colors (yellow, cyan) mark anything the learner
// is expected to act on.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// BarBlend is the gradient of a filled progress bar, left to right.
var BarBlend = []color.Color{Secondary, ArcadeCyan}

var (
	Body   = lipgloss.NewStyle().Foreground(Text)
	Prompt = lipgloss.NewStyle().Foreground(Text).Bold(true)
	Hint   = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Badge tags a question with its cognitive level.
	Badge = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(ArcadeCyan).
		Bold(true).
		Padding(0, 1)
)

// Option and answer states.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Chosen     = lipgloss.NewStyle().Foreground(ArcadeYellow).Bold(true)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Unanswered = lipgloss.NewStyle().Foreground(TextDim)
)

// ScoreColor grades a percentage score: 80 and up is a pass, 50 and up
// is borderline.
func ScoreColor(score float64) color.Color {
	switch {
	case score >= 80:
		return Success
	case score >= 50:
		return Accent
	}
	return Error
}
