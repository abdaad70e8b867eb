package components

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// MatchGrid lets the user pick a right-hand item for each left-hand row of
// a matching question. Right-hand items are numbered from 1 on screen and
// stored zero-based. Digits pick items 1-9 directly; [ and ] step the row
// through every item, so longer lists stay reachable.
type MatchGrid struct {
	Lefts  []string
	Rights []string
	Order  []int
	Cursor int

	Reveal  bool
	Correct []int
}

// NewMatchGrid creates a grid for m. order is the recorded answer and may
// be nil when the question is unanswered.
func NewMatchGrid(m *quiz.Matching, order []int) MatchGrid {
	g := MatchGrid{
		Rights:  m.Rights(),
		Correct: slices.Clone(m.CorrectOrder),
	}
	for _, p := range m.Pairs {
		g.Lefts = append(g.Lefts, p.Left)
	}
	if order != nil {
		g.Order = slices.Clone(order)
	}
	return g
}

// Update handles row movement and assignment. changed reports whether
// Order was modified and should be recorded.
func (g MatchGrid) Update(msg tea.Msg) (MatchGrid, bool) {
	if g.Reveal || len(g.Lefts) == 0 {
		return g, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if g.Cursor > 0 {
			g.Cursor--
		}
		return g, false
	case "down", "j":
		if g.Cursor < len(g.Lefts)-1 {
			g.Cursor++
		}
		return g, false
	case "backspace", "delete", "-", "0":
		g.ensureOrder()
		g.Order[g.Cursor] = quiz.Unset
		return g, true
	case "]":
		return g.step(1), len(g.Rights) > 0
	case "[":
		return g.step(-1), len(g.Rights) > 0
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx >= len(g.Rights) {
			return g, false
		}
		g.ensureOrder()
		g.Order[g.Cursor] = idx
		if g.Cursor < len(g.Lefts)-1 {
			g.Cursor++
		}
		return g, true
	}
	return g, false
}

// step moves the current row's pick by d, wrapping around. An unset row
// starts from the first item going forward and the last going back.
func (g MatchGrid) step(d int) MatchGrid {
	n := len(g.Rights)
	if n == 0 {
		return g
	}
	g.ensureOrder()
	g.Order = slices.Clone(g.Order)
	cur := g.Order[g.Cursor]
	switch {
	case cur == quiz.Unset && d > 0:
		cur = 0
	case cur == quiz.Unset:
		cur = n - 1
	default:
		cur = ((cur+d)%n + n) % n
	}
	g.Order[g.Cursor] = cur
	return g
}

func (g *MatchGrid) ensureOrder() {
	if len(g.Order) == len(g.Lefts) {
		return
	}
	g.Order = make([]int, len(g.Lefts))
	for i := range g.Order {
		g.Order[i] = quiz.Unset
	}
}

// View renders the rows followed by the numbered right-hand list.
func (g MatchGrid) View() string {
	if len(g.Lefts) == 0 {
		return theme.Hint.Render("Nothing to match.") + "\n"
	}

	var b strings.Builder
	for i, left := range g.Lefts {
		prefix := "  "
		if i == g.Cursor && !g.Reveal {
			prefix = "▸ "
		}
		pick := quiz.Unset
		if i < len(g.Order) {
			pick = g.Order[i]
		}

		line := fmt.Sprintf("%s%s  →  %s", prefix, left, g.label(pick))
		switch {
		case g.Reveal && i < len(g.Correct) && pick == g.Correct[i] && pick != quiz.Unset:
			b.WriteString(theme.Correct.Render(line))
		case g.Reveal:
			b.WriteString(theme.Incorrect.Render(line))
			if i < len(g.Correct) {
				b.WriteString(theme.Hint.Render("   correct: " + g.label(g.Correct[i])))
			}
		case i == g.Cursor:
			b.WriteString(theme.Selected.Render(line))
		case pick == quiz.Unset:
			b.WriteString(theme.Unanswered.Render(line))
		default:
			b.WriteString(theme.Chosen.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for i, r := range g.Rights {
		b.WriteString(theme.Body.Render(fmt.Sprintf("    %d) %s", i+1, r)))
		b.WriteString("\n")
	}
	return b.String()
}

func (g MatchGrid) label(idx int) string {
	if idx < 0 || idx >= len(g.Rights) {
		return "?"
	}
	return fmt.Sprintf("%d) %s", idx+1, g.Rights[idx])
}
